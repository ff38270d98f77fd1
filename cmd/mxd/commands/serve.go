package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/mxdserver/mxd/internal/banner"
	"github.com/mxdserver/mxd/internal/config"
	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/files"
	"github.com/mxdserver/mxd/internal/logger"
	"github.com/mxdserver/mxd/internal/login"
	"github.com/mxdserver/mxd/internal/metrics"
	"github.com/mxdserver/mxd/internal/news"
	"github.com/mxdserver/mxd/internal/outbound"
	"github.com/mxdserver/mxd/internal/server"
	"github.com/mxdserver/mxd/internal/store"
	"github.com/mxdserver/mxd/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mxd server",
	Long: `Run the mxd Hotline-protocol server until interrupted.

Examples:
  # Serve with the default config
  mxd serve

  # Serve with a specific config file
  mxd serve --config /etc/mxd/config.yaml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}
	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "mxd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	router := dispatch.NewRouter()
	login.NewService(st).RegisterRoutes(router)
	files.NewService(st).RegisterRoutes(router)

	newsSvc, err := news.NewService(st)
	if err != nil {
		return fmt.Errorf("open news service: %w", err)
	}
	defer func() { _ = newsSvc.Close() }()
	newsSvc.RegisterRoutes(router)

	if cfg.Banner.Bucket != "" {
		s3Client, err := newS3Client(ctx, cfg.Banner.Region)
		if err != nil {
			return fmt.Errorf("build s3 client: %w", err)
		}
		banner.NewService(s3Client, cfg.Banner.Bucket, cfg.Banner.Key).RegisterRoutes(router)
	} else {
		banner.NewService(nil, "", "").RegisterRoutes(router)
		logger.Info("banner not configured, DownloadBanner will reply empty")
	}

	m := metrics.New()
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.Bind, m)
		go func() {
			logger.Info("metrics server listening", "addr", cfg.Metrics.Bind)
			if err := metricsServer.ListenAndServe(); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() { _ = metricsServer.Shutdown(context.Background()) }()
	}

	registry := outbound.NewRegistry()
	srv := server.New(server.Config{
		Bind:             cfg.Bind,
		Dispatcher:       dispatch.NewDispatcher(router),
		OutboundRegistry: registry,
		Metrics:          m,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig.String())
		srv.Stop()
		cancel()
	}()

	logger.Info("mxd starting", "bind", cfg.Bind, "database", cfg.Database.Type)
	return srv.Serve(ctx)
}

func newS3Client(ctx context.Context, region string) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}
