package main

import (
	"context"
	"os"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/config"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/infrastructure/storage"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app - общее состояние команд: viper с привязанными флагами и путь к конфигу.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "pits",
		Short:         "Pits: location-based coin collecting game server",
		Long:          "pits serves a geocaching-style game: the world is a grid of cells, some cells hold pits with coins the player can collect and deposit.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to pits.toml (default: ./pits.toml if present)")
	flags.String("storage", "", "session storage backend: bolt, redis, memory")
	flags.String("db", "", "bolt database file")
	flags.String("redis-addr", "", "redis address for the redis backend")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	a.bind(flags.Lookup("storage"), config.KeyStorageBackend)
	a.bind(flags.Lookup("db"), config.KeyStoragePath)
	a.bind(flags.Lookup("redis-addr"), config.KeyRedisAddr)
	a.bind(flags.Lookup("log-level"), config.KeyLogLevel)

	rootCmd.AddCommand(
		newServeCmd(a),
		newExportCmd(a),
		newResetCmd(a),
		newSimulateCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// load читает конфиг и перенастраивает логгер.
func (a *app) load() (config.Config, error) {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	return cfg, nil
}

// openSessions открывает хранилище сессии. Вызывающий закрывает BlobStore.
func (a *app) openSessions(ctx context.Context, cfg config.Config) (*storage.SessionRepository, storage.BlobStore, error) {
	blobs, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, nil, err
	}
	return storage.NewSessionRepository(blobs), blobs, nil
}
