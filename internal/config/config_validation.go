// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: HTTP address is required", ErrInvalidServerConfigs)
	}

	if cfg.Security.RateLimitMax <= 0 || cfg.Security.RateLimitWindow <= 0 || cfg.Security.BodyLimit <= 0 {
		return fmt.Errorf("%w: rate limit and body limit must be positive", ErrInvalidSecurityConfigs)
	}

	if cfg.Workers.RateLimitCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
