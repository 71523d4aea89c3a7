package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ecommerce-dashboard/infrastructure/snapshot"
	"github.com/vfg2006/ecommerce-dashboard/internal/api/handler"
	"github.com/vfg2006/ecommerce-dashboard/internal/api/handler/router"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/observability"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
	"github.com/vfg2006/ecommerce-dashboard/pkg/middleware"
)

var ErrPortInUse = errors.New("port already in use")

// PortInUseError indica que o endereço de escuta já está ocupado
type PortInUseError struct {
	Address string
	Cause   error
}

func (e *PortInUseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPortInUse, e.Address, e.Cause)
}

func (e *PortInUseError) Unwrap() []error {
	return []error{ErrPortInUse, e.Cause}
}

const defaultShutdownTimeout = 15 * time.Second

type Server struct {
	httpServer      *http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, service charting.Service) (*Server, error) {
	metrics := observability.NewMetrics()
	metrics.ObserveDashboard(service.Dashboard())

	renderer := snapshot.NewRenderer(cfg)

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(metrics)...),
		router.WithRoutes(handler.Metrics(metrics)...),
		router.WithRoutes(handler.Dashboard(cfg, service, metrics)...),
		router.WithRoutes(handler.Charts(cfg, service, renderer, metrics)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Address(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: timeout,
	}

	return srv, nil
}

// Handler expõe o handler HTTP completo, com middlewares
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Listen ocupa o endereço configurado antes de servir, para que um conflito de
// porta seja reportado na inicialização e não dentro da goroutine do servidor
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &PortInUseError{Address: s.httpServer.Addr, Cause: err}
		}
		return fmt.Errorf("erro ao abrir %s: %w", s.httpServer.Addr, err)
	}

	s.listener = ln
	return nil
}

// Addr retorna o endereço efetivo após Listen (útil com porta 0)
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Run(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.Addr(),
		}).Info("Servidor iniciando")

		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err, ok := <-serveErr:
		if ok {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": s.shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
