package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"budgetctl/pkg/i18n"
)

// Config carries everything the commands need to reach the backend and
// render output. Precedence: flags > environment > config file > defaults.
type Config struct {
	ServerURL string `mapstructure:"server_url"`
	UserID    int    `mapstructure:"user_id"`
	Language  string `mapstructure:"language"`
	Theme     string `mapstructure:"theme"`
	LogLevel  string `mapstructure:"log_level"`
	Listen    string `mapstructure:"listen"`
}

// Build loads the configuration. A .env file is read into the environment
// first, then the config file (explicit path or ./config.yaml), then
// BUDGETCTL_* environment variables, then any bound command flags.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	gotenv.Load()

	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("user_id", 0)
	v.SetDefault("language", string(i18n.English))
	v.SetDefault("theme", "system")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen", ":8081")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BUDGETCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if !i18n.Valid(i18n.Lang(c.Language)) {
		return fmt.Errorf("unsupported language %q", c.Language)
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("unsupported theme %q", c.Theme)
	}
	return nil
}
