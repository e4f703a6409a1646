package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerHost    string `mapstructure:"server_host"`
	ServerPort    string `mapstructure:"server_port"`
	AutoDevAPIKey string `mapstructure:"autodev_api_key"`
	GroqAPIKey    string `mapstructure:"groq_api_key"`
	ExaAPIKey     string `mapstructure:"exa_api_key"`
	GroqModel     string `mapstructure:"groq_model"`
	DefaultZip    string `mapstructure:"default_zip"`
	DBPath        string `mapstructure:"db_path"`
	ReportTTLDays int    `mapstructure:"report_ttl_days"`
}

// Load reads configuration from an optional YAML file with environment
// variables taking precedence. API keys normally arrive via the
// environment (.env in development).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "5000")
	v.SetDefault("groq_model", "llama-3.3-70b-versatile")
	v.SetDefault("default_zip", "48309")
	v.SetDefault("db_path", "carscout.db")
	v.SetDefault("report_ttl_days", 30)

	for _, key := range []string{
		"server_host", "server_port",
		"autodev_api_key", "groq_api_key", "exa_api_key",
		"groq_model", "default_zip", "db_path", "report_ttl_days",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
