package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort               int    `mapstructure:"APP_PORT"`
	BackendURL            string `mapstructure:"BACKEND_URL"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	WaitForBackend        bool   `mapstructure:"WAIT_FOR_BACKEND"`
	DatabasePath          string `mapstructure:"DATABASE_PATH"`
	MaxUploadBytes        int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	CookieSecure          bool   `mapstructure:"COOKIE_SECURE"`
	CORSAllowedOrigins    string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel              string `mapstructure:"LOG_LEVEL"`
	ShellIdleMinutes      int    `mapstructure:"SHELL_IDLE_MINUTES"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("BACKEND_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 0)
	viper.SetDefault("WAIT_FOR_BACKEND", false)
	viper.SetDefault("DATABASE_PATH", "./data/client.db")
	viper.SetDefault("MAX_UPLOAD_BYTES", 16<<20)
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("SHELL_IDLE_MINUTES", 120)

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// HealthURL is the backend's liveness endpoint. It sits beside the /api
// prefix rather than under it.
func (c *Config) HealthURL() string {
	base := strings.TrimRight(c.BackendURL, "/")
	return strings.TrimSuffix(base, "/api") + "/health"
}
