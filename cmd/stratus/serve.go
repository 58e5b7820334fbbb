package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/stratusops/stratus/internal/api"
	"github.com/stratusops/stratus/internal/config"
	"github.com/stratusops/stratus/internal/fleet"
	awsprovider "github.com/stratusops/stratus/internal/provider/aws"
	"github.com/stratusops/stratus/internal/telemetry"
)

var (
	serveConfigPath string
	serveListenAddr string
	serveRegion     string
	serveDebug      bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the instance lifecycle API server",
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to TOML config file")
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "API listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveRegion, "region", "", "AWS region (overrides config)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveListenAddr != "" {
		cfg.Server.ListenAddr = serveListenAddr
	}
	if serveRegion != "" {
		cfg.AWS.Region = serveRegion
	}
	if serveDebug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := telemetry.NewLogger("stratus", cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// OTEL metrics with Prometheus exporter, scraped on a separate listener.
	promExporter, err := prometheus.New()
	if err != nil {
		return err
	}
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(promExporter)))

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return err
	}

	client, err := awsprovider.NewClient(ctx, cfg.AWS.Region, cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey)
	if err != nil {
		return err
	}
	adapter := awsprovider.NewAdapter(client, cfg.AWS.Region, metrics, logger)

	repo := fleet.NewRepository(adapter)
	orchestrator := fleet.NewOrchestrator(adapter, logger)
	aggregator := fleet.NewAggregator(repo)

	handlers := api.NewAPI(orchestrator, repo, aggregator, metrics, logger)
	apiServer := api.NewServer(cfg.Server.ListenAddr, handlers.Routes())

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info().
		Str("listen", cfg.Server.ListenAddr).
		Str("metrics", cfg.Server.MetricsAddr).
		Str("region", cfg.AWS.Region).
		Msg("stratus starting")

	var group run.Group
	group.Add(func() error {
		return apiServer.Run()
	}, func(error) {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = apiServer.Shutdown(shutdownCtx)
	})
	group.Add(func() error {
		err := metricsServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}, func(error) {
		_ = metricsServer.Close()
	})
	group.Add(func() error {
		<-ctx.Done()
		return ctx.Err()
	}, func(error) {
		cancel()
	})

	if err := group.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("stratus stopped")
	return nil
}
