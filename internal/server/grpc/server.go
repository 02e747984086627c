package grpcserver

import (
	"context"
	"net"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/internal/runtime"
	"github.com/rzbill/flake/internal/services/registration"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// Server owns the gRPC server instance and runtime.
type Server struct {
	rt     *runtime.Runtime
	grpc   *grpc.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New constructs a gRPC server and registers the ID, user and health
// services.
func New(rt *runtime.Runtime, reg *registration.Service, opts ...grpc.ServerOption) *Server {
	logger := rt.Logger().WithComponent("grpc")
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(loggingInterceptor(logger))}, opts...)
	s := &Server{rt: rt, grpc: grpc.NewServer(opts...), logger: logger}
	flakev1.RegisterIDServiceServer(s.grpc, &idsSvc{gen: rt.Generator(), maxBatch: rt.Config().Server.MaxBatch})
	flakev1.RegisterUserServiceServer(s.grpc, &usersSvc{reg: reg})
	healthpb.RegisterHealthServer(s.grpc, &healthSvc{rt: rt})
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lis = l
	s.logger.Info("grpc listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.grpc.Serve(l) }()
	select {
	case <-ctx.Done():
		s.grpc.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	if s.grpc != nil {
		s.grpc.GracefulStop()
	}
	if s.lis != nil {
		_ = s.lis.Close()
	}
}
