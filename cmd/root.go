package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-trainer"
)

type Config struct {
	Interview *InterviewConfig `mapstructure:"interview"`
	Server    *ServerConfig    `mapstructure:"server"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type InterviewConfig struct {
	ResumeFile         string `mapstructure:"resume-file"`
	JobDescriptionFile string `mapstructure:"job-description-file"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	BaseURL      string `mapstructure:"base-url"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-trainer is a timed adaptive mock-interview cli",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-trainer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run and serve commands. If there is no config,
	// we can skip initialization
	if runCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing default config is fine since flags and environment
	// variables can cover everything. A broken one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
