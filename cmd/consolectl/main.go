// Command consolectl drives the listings backend from a terminal: browse and mark
// listings, manage tags and check admin credentials.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"listings-console/internal/config"
	"listings-console/internal/infrastructure/api"
	"listings-console/internal/infrastructure/cache"
	"listings-console/internal/pkg/logging"
	"listings-console/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	apiToken string
	timeout  time.Duration
	logLevel string
)

// env is what every subcommand works with, built once the flags are parsed.
type env struct {
	logger   *logging.Logger
	client   *api.Client
	listings *usecase.Listings
	tags     *usecase.Tags
}

var rootCmd = &cobra.Command{
	Use:           "consolectl",
	Short:         "Job listings admin console for the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Listings backend base URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token for data requests (overrides API_AUTH_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Backend request timeout")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")
}

func newEnv() (*env, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
		cfg.AuthURL = ""
	}
	if apiToken != "" {
		cfg.AuthToken = apiToken
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("API URL is required (set API_URL or use --api-url)")
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = config.OriginOf(cfg.BaseURL)
	}

	logger := logging.NewDevelopment(logLevel)
	client := api.NewClient(cfg, logger)
	mem := cache.NewMemory()

	return &env{
		logger:   logger,
		client:   client,
		listings: usecase.NewListingsUsecase(client, mem, nil, config.DefaultCacheTTL, logger),
		tags:     usecase.NewTagsUsecase(client, mem, nil, config.DefaultCacheTTL, logger),
	}, nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
