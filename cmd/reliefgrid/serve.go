package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pavletto/reliefgrid/internal/elevation"
	"github.com/pavletto/reliefgrid/internal/env"
	"github.com/spf13/cobra"
)

const (
	readTimeout = 5 * time.Second
	idleTimeout = 120 * time.Second
)

// newMux wires the elevation handlers onto a fresh mux.
func newMux(s *elevation.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/height", s.HandleHeight)
	mux.HandleFunc("/relief", s.HandleRelief)
	mux.HandleFunc("/health", s.HandleHealth)
	return mux
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		Long: `Start an HTTP server that provides REST API endpoints for:
  - /height?lat=&lon= - Get terrain elevation at a location (JSON)
  - /relief?center=&radius=&levels=&gridsize= - Build a level grid (CSV)
  - /health - Health check endpoint

Configuration can be provided via environment variables or command-line flags.
Flags take precedence over environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return fmt.Errorf("bad input: %w", err)
			}
			client, err := cfg.CreateClient()
			if err != nil {
				return classify(err)
			}

			requestTimeout, _ := cmd.Flags().GetDuration("request-timeout")
			s := &elevation.Server{Provider: client, Units: cfg.Units, Timeout: requestTimeout}

			addr := env.Get("ADDR", ":8080")
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newMux(s),
				ReadHeaderTimeout: readTimeout,
				IdleTimeout:       idleTimeout,
			}

			// Logging is always on while serving.
			log.SetOutput(cmd.ErrOrStderr())
			log.Printf("Starting server on %s", addr)
			log.Printf("  Endpoint: %s", cfg.Endpoint)
			log.Printf("  Units: %s", cfg.Units)
			return srv.ListenAndServe()
		},
	}

	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().Duration("request-timeout", 10*time.Minute, "Deadline for a single API request")
	return serveCmd
}
