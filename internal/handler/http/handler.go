package http

import (
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/ratelimit"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/httprate"
	"github.com/microcosm-cc/bluemonday"
	"github.com/unrolled/secure"
)

type Handler struct {
	services *service.Services

	app      config.App
	server   config.Server
	security config.Security
	build    models.AppBuildInfo

	limiter   *httprate.RateLimiter
	sanitizer *bluemonday.Policy
	headers   *secure.Secure
	metrics   *metrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, counter *ratelimit.Counter, build models.AppBuildInfo, logger *logger.Logger) *Handler {
	h := &Handler{
		services:  services,
		app:       cfg.App,
		server:    cfg.Server,
		security:  cfg.Security,
		build:     build,
		sanitizer: bluemonday.StrictPolicy(),
		headers:   newSecureHeaders(),
		metrics:   newMetrics(),
		logger:    logger,
	}
	h.limiter = h.newRateLimiter(counter)

	logger.Info().Msg("http handler created")
	return h
}
