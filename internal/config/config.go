package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/comigor/korea-opendata-go/internal/apperr"
)

const (
	// DefaultNTSBaseURL is the odcloud endpoint of the business registration service.
	DefaultNTSBaseURL = "https://api.odcloud.kr/api/nts-businessman/v1"
	// DefaultKASIBaseURL is the data.go.kr endpoint of the special-day service.
	DefaultKASIBaseURL = "http://apis.data.go.kr/B090041/openapi/service/SpcdeInfoService"
	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 30 * time.Second

	envPrefix = "KOREA_OPENDATA"
)

// Environment variables that may carry the data.go.kr credential, in order of preference.
const (
	EnvAPIKey       = "DATA_GO_KR_API_KEY"
	EnvLegacyAPIKey = "NTS_API_KEY"
)

const missingKeyMessage = "DATA_GO_KR_API_KEY 환경변수가 설정되지 않았습니다. 공공데이터포털에서 API 키를 발급받아 설정해주세요."

// Transport names accepted by server.transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	NTS    APIConfig    `mapstructure:"nts"`
	KASI   APIConfig    `mapstructure:"kasi"`
	HTTP   HTTPConfig   `mapstructure:"http"`

	// Credentials resolves the API key on demand, so the tool catalog can be
	// served without one.
	Credentials *Credentials `mapstructure:"-"`
}

// ServerConfig holds the MCP transport configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
}

// Addr returns host:port for the HTTP transport.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// APIConfig holds the location of an upstream API
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// HTTPConfig holds outbound HTTP settings
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"transport": "server.transport",
	"host":      "server.host",
	"port":      "server.port",
	"log-level": "log.level",
	"log-file":  "log.file",
	"log-json":  "log.json",
}

// Load reads configuration from .env, config.yaml (or $CONFIG_PATH), the
// environment and, when flags is not nil, the command line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api_key", EnvAPIKey, EnvLegacyAPIKey); err != nil {
		return nil, fmt.Errorf("bind api key env: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	config.Credentials = &Credentials{v: v}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8483")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.json", false)
	v.SetDefault("nts.base_url", DefaultNTSBaseURL)
	v.SetDefault("kasi.base_url", DefaultKASIBaseURL)
	v.SetDefault("http.timeout", DefaultTimeout)
}

// Validate checks values that cannot be fixed by a default.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Server.Transport) {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q (use %q or %q)", c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.NTS.BaseURL == "" || c.KASI.BaseURL == "" {
		return errors.New("upstream base URLs must not be empty")
	}
	return nil
}

// Credentials resolves the shared data.go.kr API key.
type Credentials struct {
	v *viper.Viper
}

// APIKey returns the configured key. DATA_GO_KR_API_KEY wins over
// NTS_API_KEY; empty values count as unset.
func (c *Credentials) APIKey() (string, error) {
	if c != nil && c.v != nil {
		if key := c.v.GetString("api_key"); key != "" {
			return key, nil
		}
	}
	return "", apperr.Configuration(missingKeyMessage)
}
