package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/internal/usecase"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	server *grpc.Server
	health *health.Server
	cfg    *cfg.GRPCConfig
	logger logger.Logger
}

func NewGRPCServer(cfg *cfg.GRPCConfig, logger logger.Logger) *GRPCServer {
	return &GRPCServer{
		server: grpc.NewServer(),
		health: health.NewServer(),
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterServices регистрирует сервис каталога и стандартный health-сервис.
// До вызова Start оба сервиса отвечают NOT_SERVING.
func (s *GRPCServer) RegisterServices(prUC usecase.ProductUC) {
	s.server.RegisterService(&productServiceDesc, NewProductService(prUC, s.logger))
	healthpb.RegisterHealthServer(s.server, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	s.health.SetServingStatus(ProductServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
}

func (s *GRPCServer) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	lis, err := net.Listen(s.cfg.NetworkMode, addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(lis)
}

// Serve обслуживает уже открытый listener.
func (s *GRPCServer) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ProductServiceName, healthpb.HealthCheckResponse_SERVING)

	return s.server.Serve(lis)
}

// Stop переводит health в NOT_SERVING и дожидается завершения текущих вызовов.
// По истечении ctx соединения закрываются принудительно.
func (s *GRPCServer) Stop(ctx context.Context) error {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof("gRPC server stopped gracefully")
		return nil
	case <-ctx.Done():
		s.server.Stop()
		s.logger.Warnf("gRPC server forced to stop after timeout")
		return ctx.Err()
	}
}
