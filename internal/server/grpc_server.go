package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/oggyb/match-service/internal/auth"
	"github.com/oggyb/match-service/internal/config"
)

// GRPCServer wraps grpc.Server with our interceptor chain, health and reflection.
type GRPCServer struct {
	cfg    *config.Config
	server *grpc.Server
	health *health.Server
	log    *slog.Logger
}

// NewGRPCServer builds a server and registers all provided services.
//
// Interceptor order: logging, timeout, auth.
func NewGRPCServer(cfg *config.Config, tokens *auth.TokenIssuer, log *slog.Logger, registrars ...Registrar) *GRPCServer {
	var public []string
	for _, r := range registrars {
		if p, ok := r.(PublicMethods); ok {
			public = append(public, p.PublicMethods()...)
		}
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingInterceptor(log),
			timeoutInterceptor(cfg.GRPC.RequestTimeout),
			auth.UnaryInterceptor(tokens, public...),
		),
	)

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	for name := range grpcServer.GetServiceInfo() {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// enable reflection for easier debugging with grpcurl
	reflection.Register(grpcServer)

	return &GRPCServer{cfg: cfg, server: grpcServer, health: healthServer, log: log}
}

// Server exposes the underlying grpc.Server.
func (s *GRPCServer) Server() *grpc.Server { return s.server }

// Serve blocks serving on lis.
func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// Start listens on the configured address and serves until stopped.
func (s *GRPCServer) Start() error {
	addr := s.cfg.GRPC.Addr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.log.Info("starting gRPC server", "addr", addr)
	return s.Serve(lis)
}

// Stop drains in-flight calls, forcing a stop when ctx ends first.
func (s *GRPCServer) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("graceful stop timed out, forcing")
		s.server.Stop()
	}
}
