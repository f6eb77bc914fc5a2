package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the party builder over HTTP",
		Long: `Starts the REST API (POST /api/v1/party/generate and friends) and, when
server.enable_events is set, streams generation progress on /ws.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Address = addr
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.address)")
	return cmd
}

func (c *cli) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, c.cfg, c.logger, c.verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	services := &api.Services{
		Generator: a.generator,
		Moves:     a.moves,
		Species:   a.pokeapi,
		Catalog:   a.catalog,
		Pokedex:   a.pokedex,
		Learnable: a.learnable,
		Metrics:   a.metrics,
		Provider:  a.backend.Suggester.Name(),
		Language:  c.cfg.PokeAPI.Language,
	}
	if o := a.ollama(); o != nil {
		services.Checker = o
	}

	server := api.NewServer(c.cfg.Server, services, c.logger)
	if observer := server.NewWebSocketObserver(); observer != nil {
		a.dispatcher.Register(observer)
	}
	if err := server.Start(); err != nil {
		return err
	}
	c.logger.Info("pokeparty ready",
		zap.String("address", server.Addr()),
		zap.String("provider", services.Provider))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		c.logger.Warn("Error during shutdown", zap.Error(err))
	}
	return nil
}
