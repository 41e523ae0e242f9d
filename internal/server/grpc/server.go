// Package grpc serves session introspection to internal callers: other
// services present a customer's access token and learn whose session it is.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/logging"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Authorizer resolves an access token to an active session.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*models.CustomerAuth, error)
}

type GRPCServer struct {
	address    string
	authorizer Authorizer
	logger     logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, authorizer Authorizer) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		authorizer: authorizer,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	registerSessionServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(listen)
	cancel()
	<-done
	return err
}

func (s *GRPCServer) Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": "OK"})
}

func (s *GRPCServer) Introspect(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing session")
	}

	return structpb.NewStruct(map[string]any{
		"session_id":  session.UUID,
		"customer_id": session.CustomerUUID,
		"login_at":    session.LoginAt.UTC().Format(time.RFC3339),
		"expires_at":  session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
