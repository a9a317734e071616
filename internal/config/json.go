package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the optional JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		Environment    string   `json:"environment"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		CookieDuration Duration `json:"cookie_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
			MaxIdleConns int    `json:"max_idle_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		StaticDir       string   `json:"static_dir"`
	} `json:"server,omitempty"`

	Security struct {
		RateLimitMax       int      `json:"rate_limit_max"`
		RateLimitWindow    Duration `json:"rate_limit_window"`
		RateLimitMessage   string   `json:"rate_limit_message"`
		BodyLimit          int64    `json:"body_limit"`
		ParameterWhitelist []string `json:"parameter_whitelist"`
	} `json:"security,omitempty"`

	Workers struct {
		RateLimitCleanupInterval Duration `json:"rate_limit_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Environment:    jsonCfg.App.Environment,
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			CookieDuration: time.Duration(jsonCfg.App.CookieDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns: jsonCfg.Storage.DB.MaxIdleConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			StaticDir:       jsonCfg.Server.StaticDir,
		},
		Security: Security{
			RateLimitMax:       jsonCfg.Security.RateLimitMax,
			RateLimitWindow:    time.Duration(jsonCfg.Security.RateLimitWindow),
			RateLimitMessage:   jsonCfg.Security.RateLimitMessage,
			BodyLimit:          jsonCfg.Security.BodyLimit,
			ParameterWhitelist: jsonCfg.Security.ParameterWhitelist,
		},
		Workers: Workers{
			RateLimitCleanupInterval: time.Duration(jsonCfg.Workers.RateLimitCleanupInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
