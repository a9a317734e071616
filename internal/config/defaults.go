package config

import "time"

// Default values used for settings that no other source provides.
const (
	DefaultHTTPAddress      = ":3000"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultStaticDir        = "public"
	DefaultTokenIssuer      = "go-tours"
	DefaultTokenDuration    = 90 * 24 * time.Hour
	DefaultCookieDuration   = 90 * 24 * time.Hour
	DefaultRateLimitMax     = 100
	DefaultRateLimitWindow  = time.Hour
	DefaultRateLimitMessage = "Too many requests from this IP, please try again in an hour"
	DefaultBodyLimit        = 10 << 10
	DefaultMaxOpenConns     = 10
	DefaultMaxIdleConns     = 4
	DefaultCleanupInterval  = time.Minute
)

// DefaultParameterWhitelist lists query parameters that may legitimately be
// repeated to filter by several values.
var DefaultParameterWhitelist = []string{
	"duration",
	"ratingsQuantity",
	"ratingsAverage",
	"maxGroupSize",
	"difficulty",
	"price",
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Environment:    EnvironmentProduction,
			TokenIssuer:    DefaultTokenIssuer,
			TokenDuration:  DefaultTokenDuration,
			CookieDuration: DefaultCookieDuration,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: DefaultMaxOpenConns,
				MaxIdleConns: DefaultMaxIdleConns,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			StaticDir:       DefaultStaticDir,
		},
		Security: Security{
			RateLimitMax:       DefaultRateLimitMax,
			RateLimitWindow:    DefaultRateLimitWindow,
			RateLimitMessage:   DefaultRateLimitMessage,
			BodyLimit:          DefaultBodyLimit,
			ParameterWhitelist: append([]string(nil), DefaultParameterWhitelist...),
		},
		Workers: Workers{
			RateLimitCleanupInterval: DefaultCleanupInterval,
		},
	}
}
