package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/marine-data/behavior.report/api"
	"github.com/marine-data/behavior.report/db"
	"github.com/marine-data/behavior.report/internal/config"
	"github.com/marine-data/behavior.report/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file")
	dataPath   = flag.String("data", "", "Path to tracking CSV (falls back to synthetic data when missing)")
	dbPath     = flag.String("db", "", "Path to sqlite database")
	outputDir  = flag.String("output", "", "Directory for exported results and plots")
	species    = flag.String("species", "", "Species tag recorded with the analysis run")
	seed       = flag.Uint64("seed", 0, "Synthetic generator seed")
	samples    = flag.Int("samples", 0, "Synthetic sample count")
	serve      = flag.Bool("serve", false, "Serve results over HTTP after the analysis run")
	listen     = flag.String("listen", "", "Listen address for -serve")
)

// resolveConfig layers the config file (if any) over defaults, then explicit
// flags over both.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return cfg, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataPath = *dataPath
		case "db":
			cfg.DBPath = *dbPath
		case "output":
			cfg.OutputDir = *outputDir
		case "species":
			cfg.Species = *species
		case "seed":
			cfg.SyntheticSeed = *seed
		case "samples":
			cfg.SyntheticSamples = *samples
		case "listen":
			cfg.Listen = *listen
		}
	})
	return cfg, nil
}

func main() {
	flag.Parse()
	log.Printf("behavior.report %s (%s)", version.Version, version.GitSHA)

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	run, ok, err := runAnalysis(cfg, database)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	if ok {
		log.Printf("Analysis complete: run=%s mean=%.3f min=%.3f proximity_events=%d",
			run.RunID, run.Summary.MeanDistance, run.Summary.MinDistance, run.Summary.ProximityEvents)
	} else {
		log.Print("Analysis skipped: fewer than two subjects in the data")
	}

	if !*serve {
		return
	}

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := http.NewServeMux()
		if err := database.AttachAdminRoutes(mux); err != nil {
			log.Printf("failed to attach admin routes: %v", err)
		}
		mux.Handle("/", api.NewServer(database).ServeMux())

		server := &http.Server{
			Addr:    cfg.Listen,
			Handler: mux,
		}

		go func() {
			log.Printf("serving analysis results on %s", cfg.Listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
