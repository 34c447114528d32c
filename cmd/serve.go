package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dkoval/interview-trainer/internal/ai"
	"github.com/dkoval/interview-trainer/internal/ai/gemini"
	openaiclient "github.com/dkoval/interview-trainer/internal/ai/openai"
	"github.com/dkoval/interview-trainer/internal/logger"
	"github.com/dkoval/interview-trainer/internal/secrets"
	"github.com/dkoval/interview-trainer/internal/server"
)

const defaultListenAddr = ":5000"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat-completion proxy API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", defaultListenAddr, "address to listen on")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-trainer proxy", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the assistant", zap.Error(err))
	}

	addr := strings.TrimSpace(viper.GetString("server.listen"))
	if addr == "" {
		addr = defaultListenAddr
	}

	srv := server.New(assistant, logger)
	if err := srv.ListenAndServe(addr); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

// newAssistant builds the configured chat-completion provider.
func newAssistant(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Assistant, error) {
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "openai":
		if cfg.OpenAI == nil {
			return nil, errors.New("openai configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: cfg.OpenAI.APIKeyFile,
			Env:  "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_KEY_FILE)", err)
		}

		return openaiclient.New(&openaiclient.Config{
			APIKey:       apiKey,
			Model:        cfg.OpenAI.Model,
			BaseURL:      cfg.OpenAI.BaseURL,
			MaxRetries:   cfg.OpenAI.MaxRetries,
			MaxLogLength: cfg.OpenAI.MaxLogLength,
		}, logger)
	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("gemini configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_KEY_FILE)", err)
		}

		return gemini.New(ctx, &gemini.Config{
			APIKey:       apiKey,
			Model:        cfg.Gemini.Model,
			MaxRetries:   cfg.Gemini.MaxRetries,
			MaxLogLength: cfg.Gemini.MaxLogLength,
		}, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
