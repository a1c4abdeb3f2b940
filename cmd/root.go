package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Annallisboa/QA-app/internal/config"
	"github.com/Annallisboa/QA-app/internal/llm"
	"github.com/Annallisboa/QA-app/internal/logging"
)

var (
	verbose    bool
	configPath string
	envPath    string
	cfg        *config.Config
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "qa-app",
	Short:         "Answer smartphone questions for older adults, with a map of places to visit",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the credential may come from the real environment.
		_ = godotenv.Load(envPath)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger = logging.New(os.Stderr, verbose || cfg.Log.Verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "Optional file of environment variables to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

// newClient builds the model client for the configured provider.
func newClient() (llm.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var client llm.Client
	switch cfg.Model.Provider {
	case config.ProviderAnthropic:
		client = llm.NewAnthropicClient(llm.AnthropicOptions{
			APIKey:    cfg.Model.APIKey(),
			Model:     cfg.Model.Name,
			BaseURL:   cfg.Model.Endpoint,
			MaxTokens: cfg.Model.MaxTokens,
			Timeout:   cfg.Model.Timeout.Duration,
		})
	default:
		client = &llm.OpenAIClient{
			APIKey:     cfg.Model.APIKey(),
			Model:      cfg.Model.Name,
			Endpoint:   cfg.Model.Endpoint,
			HTTPClient: &http.Client{Timeout: cfg.Model.Timeout.Duration},
		}
	}

	if verbose || cfg.Log.Verbose {
		client = llm.WithLogging(client, logger)
	}
	return client, nil
}
