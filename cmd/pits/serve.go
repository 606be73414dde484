package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/config"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/engine"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/server"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/version"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server (HTTP + WebSocket)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			// Graceful Shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "listen address (default :8080)")
	flags.Bool("debug", false, "expose /debug routes")
	flags.Bool("strict", false, "panic on internal invariant violations")
	a.bind(flags.Lookup("addr"), config.KeyAddr)
	a.bind(flags.Lookup("debug"), config.KeyDebug)
	a.bind(flags.Lookup("strict"), config.KeyStrict)

	return cmd
}

func serve(ctx context.Context, a *app, cfg config.Config) error {
	logger.Log.Info("Starting Pits...")
	logger.Log.Info(version.String())

	sessions, blobs, err := a.openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := blobs.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close session storage")
		}
	}()

	gameService, err := engine.NewService(cfg.EngineConfig(), sessions)
	if err != nil {
		return err
	}
	if err := gameService.Load(ctx); err != nil {
		return err
	}
	gameService.Start(ctx)

	logger.Log.WithFields(logrus.Fields{
		"storage": cfg.Storage.Backend,
		"radius":  cfg.Game.VisibilityRadius,
		"debug":   cfg.Server.Debug,
	}).Info("game service started")

	srv := server.New(gameService, cfg.Server.Addr)
	srv.Debug = cfg.Server.Debug
	runErr := srv.Run(ctx)

	logger.Log.Info("Shutting down...")
	// Stop дожидается финального сохранения сессии
	gameService.Stop()
	logger.Log.Info("Done.")
	return runErr
}
