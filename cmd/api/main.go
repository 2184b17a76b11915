package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"psyfit/adapters/postgres"
	"psyfit/adapters/postgres/migrations"
	"psyfit/app"
	"psyfit/internal/config"
	"psyfit/internal/testkit"
	"psyfit/ports"
	"psyfit/ui"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	runs, err := initRunRepository(cfg)
	if err != nil {
		log.Fatalf("failed to initialize run storage: %v", err)
	}

	// The fitting engine is an external collaborator; without a native
	// binding configured the server runs on the deterministic synthetic
	// engine.
	engine := testkit.NewSyntheticEngine(cfg.Engine.Seed)
	log.Printf("using synthetic fitting engine (seed %d)", cfg.Engine.Seed)

	svc := app.NewBootstrapService(engine, runs)
	server := ui.NewServer(ui.Config{GinMode: cfg.Server.GinMode}, svc, runs)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiSrv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: server.Router()}
	opsSrv := &http.Server{Addr: ":" + cfg.Ops.Port, Handler: ui.NewOpsRouter()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("API server listening on :%s", cfg.Server.Port)
		if err := apiSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.Ops.Enabled {
		g.Go(func() error {
			log.Printf("ops server listening on :%s", cfg.Ops.Port)
			if err := opsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = opsSrv.Shutdown(shutdownCtx)
		return apiSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// initRunRepository connects to PostgreSQL when configured, falling back to
// the in-memory repository for local and demo use
func initRunRepository(cfg *config.Config) (ports.RunRepositoryPort, error) {
	if cfg.Database.URL == "" {
		log.Printf("DATABASE_URL not set, storing runs in memory")
		return testkit.NewInMemoryRunRepository(), nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		return nil, err
	}

	log.Printf("runs stored in PostgreSQL")
	return postgres.NewRunRepository(db), nil
}
