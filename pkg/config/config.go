package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the settings for one process run.
type Config struct {
	DataDir      string `yaml:"dataDir" env:"F1_DATA_DIR"`
	Order        string `yaml:"order" env:"F1_ORDER"`
	WebOrder     string `yaml:"webOrder" env:"F1_WEB_ORDER"`
	IgnoreErrors bool   `yaml:"ignoreErrors" env:"F1_IGNORE_ERRORS"`

	LogLevel  string `yaml:"logLevel" env:"F1_LOG_LEVEL"`
	LogFormat string `yaml:"logFormat" env:"F1_LOG_FORMAT"`

	WebserverAddress string `yaml:"webserverAddress" env:"WEBSERVER_ADDRESS"`
	StoreDSN         string `yaml:"storeDsn" env:"F1_STORE_DSN"`

	Telegram TelegramConfig `yaml:"telegram"`
}

type TelegramConfig struct {
	Token   string  `yaml:"token" env:"TELEGRAM_TOKEN"`
	ChatIDs []int64 `yaml:"chatIds" env:"TELEGRAM_CHAT_IDS" envSeparator:","`
}

func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && len(t.ChatIDs) > 0
}

func Default() Config {
	return Config{
		DataDir:          "./data",
		Order:            "asc",
		WebOrder:         "desc",
		LogLevel:         "info",
		LogFormat:        "text",
		WebserverAddress: ":8080",
		StoreDSN:         ":memory:",
	}
}

// Load applies, in order, the defaults, the YAML file at path (if any) and
// the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
