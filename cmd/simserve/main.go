package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"tugsim/internal/combat"
	"tugsim/internal/config"
	"tugsim/internal/stream"
)

func main() {
	var addr, cfgDir, envPath string
	var interval time.Duration
	flag.StringVar(&addr, "addr", ":8080", "listen address")
	flag.StringVar(&cfgDir, "config", "assets", "config dir")
	flag.StringVar(&envPath, "env", ".env", "env file with TUGSIM_* overrides")
	flag.DurationVar(&interval, "step", 0, "frame interval; 0 uses step_ms from the config")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, addr, cfgDir, envPath, interval); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, addr, cfgDir, envPath string, interval time.Duration) error {
	if err := config.LoadEnv(envPath); err != nil {
		return err
	}
	simCfg, archetypes, err := config.LoadAll(cfgDir)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := config.ApplyEnv(simCfg); err != nil {
		return err
	}
	var catalog *combat.Catalog
	if archetypes != nil {
		catalog, err = combat.NewCatalog(archetypes)
	} else {
		catalog, err = combat.DefaultCatalog()
	}
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if interval == 0 {
		interval = time.Duration(simCfg.StepMs) * time.Millisecond
	}

	logger := log.Default()
	handler, err := stream.NewHandler(stream.HandlerConfig{
		Catalog:      catalog,
		Sim:          *simCfg,
		StepInterval: interval,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/match", handler)
	mux.Handle("/races", racesHandler(catalog, logger))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	logger.Printf("spectator feed listening on %s (races %v, frame every %s)", addr, catalog.Races(), interval)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// racesHandler lists the catalog's race ids as JSON.
func racesHandler(catalog *combat.Catalog, logger *log.Logger) http.HandlerFunc {
	body := combat.MarshalPretty(catalog.Races())
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(body); err != nil {
			logger.Printf("races: write to %s failed: %v", r.RemoteAddr, err)
		}
	}
}
