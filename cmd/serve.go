package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"go-storefront/config"
	"go-storefront/middleware"
	"go-storefront/routes"
	"go-storefront/server"
	"go-storefront/session"
	"go-storefront/store"
	"go-storefront/utils"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront server",
		Long:  "Serve the public site and the admin console API, retrying on successive ports if the configured one is taken",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	if cfg.Auth.PasswordHash == "" {
		logger.Warnw("ADMIN_PASSWORD_HASH is not set; console logins will fail until it is")
	}

	var metrics *middleware.Metrics
	if cfg.Metrics.Enabled {
		metrics = middleware.NewMetrics()
	}

	handler := routes.New(routes.Dependencies{
		PasswordHash:   cfg.Auth.PasswordHash,
		Sessions:       session.NewMemoryStore(session.WithTTL(cfg.Auth.SessionTTL)),
		Catalog:        store.NewCatalog(cfg.Storage.DataFile, logger),
		Pages:          store.NewPages(cfg.Storage.PublicDir),
		Uploads:        store.NewUploads(cfg.Storage.UploadDir, store.UploadURLPrefix),
		Logger:         logger,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	ln, err := server.Listen(cfg.Server, logger)
	if err != nil {
		logger.Errorw("Could not bind a port", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(handler, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger).Serve(ctx, ln)
}
