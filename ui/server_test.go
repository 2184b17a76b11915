package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfit/app"
	"psyfit/internal/testkit"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	kit := testkit.NewTestKit()
	svc := app.NewBootstrapService(kit.Engine(), kit.RunRepository())
	return NewServer(Config{GinMode: gin.TestMode}, svc, kit.RunRepository())
}

func postBootstrap(t *testing.T, s *Server, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func fixtureBody() map[string]any {
	data := make([][]float64, 0)
	for _, b := range testkit.FixtureBlocks() {
		data = append(data, []float64{b.Intensity, float64(b.Correct), float64(b.Trials)})
	}
	return map[string]any{"data": data, "nsamples": 50}
}

func TestBootstrapEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := postBootstrap(t, s, fixtureBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ID     string `json:"id"`
		Result struct {
			Estimates  [][]float64 `json:"estimates"`
			Thresholds [][]float64 `json:"thresholds"`
			Outliers   []bool      `json:"outliers"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Result.Estimates, 50)
	assert.Len(t, resp.Result.Estimates[0], 3)
	assert.Len(t, resp.Result.Thresholds[0], 1)
	assert.Len(t, resp.Result.Outliers, 6)
}

func TestBootstrapEndpointPolymorphicCuts(t *testing.T) {
	s := newTestServer(t)

	body := fixtureBody()
	body["cuts"] = 0.3
	w := postBootstrap(t, s, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body["cuts"] = []float64{0.25, 0.75}
	w = postBootstrap(t, s, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBootstrapEndpointRejectsBadCuts(t *testing.T) {
	s := newTestServer(t)

	body := fixtureBody()
	body["cuts"] = "x"
	w := postBootstrap(t, s, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBootstrapEndpointRejectsUnknownSigmoid(t *testing.T) {
	s := newTestServer(t)

	body := fixtureBody()
	body["sigmoid"] = "nope"
	w := postBootstrap(t, s, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBootstrapEndpointRequiresData(t *testing.T) {
	s := newTestServer(t)

	w := postBootstrap(t, s, map[string]any{"nsamples": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModelsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sigmoids []string `json:"sigmoids"`
		Cores    []string `json:"cores"`
		Priors   []string `json:"priors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Sigmoids, "logistic")
	assert.Contains(t, resp.Cores, "ab")
	assert.Contains(t, resp.Priors, "Gauss")
}

func TestRunLifecycleEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := postBootstrap(t, s, fixtureBody())
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+created.ID, nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+created.ID+"/report", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<table>")

	req = httptest.NewRequest(http.MethodGet, "/api/runs/does-not-exist", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
