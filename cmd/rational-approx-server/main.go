package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/iwvelando/rational-approx/internal/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	configLocation string
	address        string
	logLevel       string
	maxUploadSize  string
	versionLabel   string
)

func init() {
	pflag.StringVarP(&configLocation, "config", "c", "", "path to server configuration file")
	pflag.StringVarP(&address, "address", "a", "", "listen address override (e.g. :8080)")
	pflag.StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
	pflag.StringVar(&maxUploadSize, "max-upload-size", "", "maximum config upload size override (e.g. 256K, 10M)")
	pflag.StringVar(&versionLabel, "version-label", "", "version string reported by /api/version")
}

func main() {
	pflag.Parse()

	cfg, err := server.LoadConfig(configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	if address != "" {
		cfg.Address = address
	}
	if maxUploadSize != "" {
		size, err := server.ParseSize(maxUploadSize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max upload size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetUploadSizeBytes(size)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	zapConfig := zap.NewProductionConfig()
	if err := zapConfig.Level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid log level\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), versionLabel)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("listening",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.Int64("maxUploadBytes", cfg.UploadSizeBytes()),
	)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
