package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/handler"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, workers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    workers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run serves until ctx is done, then shuts the HTTP server down and waits
// for the workers to return.
func (s *server) run(ctx context.Context) {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if s.workers != nil {
		s.workers.Run(workerCtx)
	}

	s.logger.Info().Msg("Launching HTTP server")
	served := make(chan struct{})
	go func() {
		s.httpServer.RunServer()
		close(served)
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		<-served
	case <-served:
	}

	stopWorkers()
	if s.workers != nil {
		s.workers.Wait()
	}

	s.logger.Info().Msg("server Shutdown gracefully")
}
