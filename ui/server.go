// Package ui exposes the bootstrap service over HTTP: a gin JSON API plus a
// small chi-based operational endpoint.
package ui

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"psyfit/app"
	"psyfit/domain/core"
	"psyfit/domain/model"
	"psyfit/domain/prior"
	"psyfit/domain/trials"
	"psyfit/internal/report"
	"psyfit/ports"
)

// Server represents the JSON API server
type Server struct {
	router *gin.Engine
	svc    *app.BootstrapService
	runs   ports.RunRepositoryPort
}

// Config holds API server configuration
type Config struct {
	GinMode string
}

// NewServer creates the API server and registers its routes
func NewServer(cfg Config, svc *app.BootstrapService, runs ports.RunRepositoryPort) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router: gin.New(),
		svc:    svc,
		runs:   runs,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.POST("/bootstrap", s.handleBootstrap)
	api.GET("/models", s.handleModels)
	api.GET("/runs", s.handleListRuns)
	api.GET("/runs/:id", s.handleGetRun)
	api.GET("/runs/:id/report", s.handleRunReport)
}

// Router exposes the underlying handler for serving and for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the API server on the given address
func (s *Server) Run(addr string) error {
	log.Printf("API server listening on %s", addr)
	return s.router.Run(addr)
}

// bootstrapRequest is the inbound payload. Cuts stays raw because the field
// is polymorphic: null, a number, or an array of numbers.
type bootstrapRequest struct {
	Data       [][3]float64    `json:"data" binding:"required"`
	Nsamples   int             `json:"nsamples"`
	Nafc       int             `json:"nafc"`
	Sigmoid    string          `json:"sigmoid"`
	Core       string          `json:"core"`
	Priors     []string        `json:"priors"`
	Cuts       json.RawMessage `json:"cuts"`
	Start      []float64       `json:"start"`
	Parametric *bool           `json:"parametric"`
}

type runResponse struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Sigmoid    string `json:"sigmoid"`
	Core       string `json:"core"`
	Nafc       int    `json:"nafc"`
	Samples    int    `json:"samples"`
	Parametric bool   `json:"parametric"`
	NBlocks    int    `json:"nblocks"`
	NCuts      int    `json:"ncuts"`

	Result any `json:"result,omitempty"`
}

func toRunResponse(record *ports.RunRecord, includeResult bool) runResponse {
	resp := runResponse{
		ID:         record.ID.String(),
		CreatedAt:  record.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Sigmoid:    record.Sigmoid,
		Core:       record.Core,
		Nafc:       record.Nafc,
		Samples:    record.Samples,
		Parametric: record.Parametric,
		NBlocks:    record.NBlocks,
		NCuts:      record.NCuts,
	}
	if includeResult {
		resp.Result = record.Result
	}
	return resp
}

func (s *Server) handleBootstrap(c *gin.Context) {
	var req bootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := trials.FromRows(req.Data)
	if err != nil {
		s.respondError(c, err)
		return
	}

	cuts, err := trials.ParseCuts(req.Cuts)
	if err != nil {
		s.respondError(c, err)
		return
	}

	record, err := s.svc.Run(c.Request.Context(), data, app.Params{
		Samples:    req.Nsamples,
		Nafc:       req.Nafc,
		Sigmoid:    req.Sigmoid,
		Core:       req.Core,
		Priors:     req.Priors,
		Cuts:       cuts,
		Start:      req.Start,
		Parametric: req.Parametric,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRunResponse(record, true))
}

func (s *Server) handleModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sigmoids": model.AvailableSigmoids(),
		"cores":    model.AvailableCores(),
		"priors":   prior.AvailableFamilies(),
	})
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusOK, []runResponse{})
		return
	}

	records, err := s.runs.List(c.Request.Context(), ports.RunFilters{Limit: 50})
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]runResponse, len(records))
	for i, record := range records {
		out[i] = toRunResponse(record, false)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRun(c *gin.Context) (*ports.RunRecord, bool) {
	if s.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run storage not configured"})
		return nil, false
	}

	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	record, err := s.runs.Get(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return nil, false
	}
	return record, true
}

func (s *Server) handleGetRun(c *gin.Context) {
	record, ok := s.getRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toRunResponse(record, true))
}

func (s *Server) handleRunReport(c *gin.Context) {
	record, ok := s.getRun(c)
	if !ok {
		return
	}
	md := report.BuildMarkdown(record)
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.RenderHTML(md))
}

// respondError maps domain rejections to 400, missing runs to 404 and
// everything else (engine failures included) to 500
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsInvalidSpec(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("bootstrap request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
