// Package grpc exposes the standard gRPC health service so cluster
// probes can check the draft service without going through HTTP.
package grpc

import (
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mackleonard/NBAWebScraper/internal/dal"
	"github.com/mackleonard/NBAWebScraper/internal/logger"
)

// ServiceName is the name probes query on the health service
const ServiceName = "draft"

// Server runs a gRPC server with health checking backed by the
// rankings store
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	dal    dal.RankingsDAL
	done   chan struct{}
}

// NewServer creates a new gRPC health server
func NewServer(store dal.RankingsDAL) *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
		dal:    store,
		done:   make(chan struct{}),
	}

	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Serve listens on addr and blocks until the server stops
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	go s.watchStore()

	logger.Info("gRPC server starting", "address", addr)
	return s.grpc.Serve(lis)
}

// watchStore flips the health status when the store stops responding
func (s *Server) watchStore() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status := healthpb.HealthCheckResponse_SERVING
			if err := s.dal.Health(); err != nil {
				logger.Warn("Rankings store unhealthy", "error", err)
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
			s.health.SetServingStatus(ServiceName, status)
		case <-s.done:
			return
		}
	}
}

// Stop shuts the server down gracefully
func (s *Server) Stop() {
	close(s.done)
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
