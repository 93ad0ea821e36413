package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sun-mit/streamhub/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve starts the local HTTP API server.
//
// The server shares storage with the CLI and TUI, so a login performed here
// is visible to the other surfaces and vice versa.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewAPIRouter(r.sessions, r.watchlists, r.engine, r.catalog, r.logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	r.logger.Info("starting API server", "addr", srv.Addr)
	r.writePlain("Listening on http://%s\n", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
