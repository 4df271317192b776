package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/minisocial/internal/api"
	"github.com/phrazzld/minisocial/internal/config"
	"github.com/phrazzld/minisocial/internal/platform/logger"
	"github.com/phrazzld/minisocial/internal/platform/memory"
	"github.com/phrazzld/minisocial/internal/platform/render"
	"github.com/phrazzld/minisocial/internal/service/auth"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the social network HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML config file (default: ./config.yaml if present)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "port to listen on, overriding the configuration",
			},
		},
		Action: func(c *cli.Context) error {
			v := viper.New()
			if path := c.String("config"); path != "" {
				v.SetConfigFile(path)
			}
			if c.IsSet("port") {
				v.Set("server.port", c.Int("port"))
			}

			cfg, err := config.LoadWithViper(v)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log, err := logger.Setup(cfg.Server)
			if err != nil {
				return fmt.Errorf("failed to set up logger: %w", err)
			}
			log.Info("Server configuration loaded",
				"network", cfg.Network.Name,
				"port", cfg.Server.Port,
				"log_level", cfg.Server.LogLevel)

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

// serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	network, err := newNetwork(cfg.Network.Name, cfg.Auth.BcryptCost, render.DefaultWidth, log)
	if err != nil {
		return err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	router := api.NewRouter(api.RouterDeps{
		Network:    network,
		Posts:      memory.NewMemoryPostStore(log),
		JWTService: jwtService,
		Logger:     log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			log.Error("Server failed", "error", err)
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server shutdown completed")
	return nil
}
