// Package config loads application configuration from file, environment, and
// defaults via viper. A .env file, when present, is loaded first.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DataDir     string `mapstructure:"data_dir"`     // sqlite store and seen-ledger live here
	OutputDir   string `mapstructure:"output_dir"`   // digest documents
	SourcesFile string `mapstructure:"sources_file"` // yaml source list
	Gemini      Gemini `mapstructure:"gemini"`
	GitHub      GitHub `mapstructure:"github"`
}

// Gemini holds summarization model configuration.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// GitHub holds GitHub API configuration.
type GitHub struct {
	Token string `mapstructure:"token"`
}

// StatePath returns the seen-ledger document path.
func (c *Config) StatePath() string {
	return c.DataDir + "/state.json"
}

// Load reads configuration. Order of precedence: environment variables, then
// the config file (default .agentdigest.yaml in the working directory), then
// built-in defaults.
func Load(cfgFile string) (*Config, error) {
	// Best effort; running without a .env file is normal.
	_ = godotenv.Load()

	viper.SetDefault("data_dir", "data")
	viper.SetDefault("output_dir", "digest")
	viper.SetDefault("sources_file", "sources.yaml")
	viper.SetDefault("gemini.model", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".agentdigest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("AGENTDIGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// Running without a config file is fine; a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}
