package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultRateAPIURL = "https://www.cbr-xml-daily.ru/daily_json.js"

type HTTPServer struct {
	Host                   string `mapstructure:"host"`
	Port                   string `mapstructure:"port"`
	StrictStatus           bool   `mapstructure:"strict_status"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

func (config *HTTPServer) Addr() string {
	return net.JoinHostPort(config.Host, config.Port)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RateAPI struct {
	URL string `mapstructure:"url"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	RateAPI    RateAPI    `mapstructure:"rate_api"`
	Logging    Logging    `mapstructure:"logging"`
}

// Init reads configuration from .env, the YAML config file and the environment.
// Both files are optional; CONFIG_FILE overrides the config file path.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	return Load(configFile)
}

// Load builds the config from configFile (skipped when missing), env vars and defaults.
func Load(configFile string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("http_server.host", "")
	v.SetDefault("http_server.port", "8009")
	v.SetDefault("http_server.strict_status", false)
	v.SetDefault("http_server.shutdown_timeout_seconds", 10)
	v.SetDefault("http_client.timeout_seconds", 0)
	v.SetDefault("rate_api.url", DefaultRateAPIURL)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configFile != "" {
		_, statErr := os.Stat(configFile)
		switch {
		case statErr == nil:
			v.SetConfigFile(configFile)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		case !errors.Is(statErr, fs.ErrNotExist):
			return nil, fmt.Errorf("error reading config file: %w", statErr)
		}
	}

	// http server env vars
	_ = v.BindEnv("http_server.host", "HTTP_HOST")
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_server.strict_status", "HTTP_STRICT_STATUS")
	_ = v.BindEnv("http_server.shutdown_timeout_seconds", "HTTP_SHUTDOWN_TIMEOUT_SECONDS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate api env vars
	_ = v.BindEnv("rate_api.url", "RATE_API_URL")

	// logging env vars
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.RateAPI.URL == "" {
		return nil, errors.New("rate api url is required")
	}

	return &cfg, nil
}
