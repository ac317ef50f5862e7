package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Aung-Nyi-Thant/KeepMemories/internal/api"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/factory"
	"github.com/Aung-Nyi-Thant/KeepMemories/internal/services/auth"
	redisstorage "github.com/Aung-Nyi-Thant/KeepMemories/internal/storage/redis"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "keepmemories-server",
		Short:        "KeepMemories playground and memories server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "interface to bind")
	flags.Int("port", 8080, "port to listen on")
	flags.String("storage", factory.StorageTypeMemory, "storage backend (memory or redis)")
	flags.String("redis-url", "", "redis connection URL (required for redis storage)")
	flags.String("jwt-secret", "", "secret used to sign auth tokens")
	flags.Duration("token-ttl", 24*time.Hour, "auth token lifetime")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	// Every flag is also settable via KEEPMEM_* environment variables
	viper.SetEnvPrefix("KEEPMEM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	return cmd
}

func run(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(viper.GetString("log-level")),
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:      logger,
		StorageType: viper.GetString("storage"),
	}

	if secret := viper.GetString("jwt-secret"); secret != "" {
		cfg.AuthConfig = auth.Config{
			Secret:   secret,
			TokenTTL: viper.GetDuration("token-ttl"),
		}
	} else {
		logger.Warn("no jwt-secret configured, using development default")
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := viper.GetString("redis-url")
		if redisURL == "" {
			logger.Error("redis-url required when storage=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		PairingService:   app.PairingService,
		MemoriesService:  app.MemoriesService,
		PlaygroundServer: app.PlaygroundServer,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = viper.GetString("host")
	serverConfig.Port = viper.GetInt("port")
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Background invite expiry sweeps stop with the server
	go app.PlaygroundServer.Run(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
