package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/tgauth/internal/logging"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"github.com/dmitrijs2005/tgauth/internal/server/linking"
	"github.com/dmitrijs2005/tgauth/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AuthService is what the transport needs from services.AuthService.
type AuthService interface {
	Authenticate(ctx context.Context, fields map[string]string) (*services.LoginResult, error)
	Connect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error)
	Reconnect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error)
	Revoke(ctx context.Context, userID string) (linking.Result, error)
	Describe(ctx context.Context, userID string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedTelegramAuthServer
	address   string
	auth      AuthService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, as AuthService, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestLogInterceptor, s.accessTokenInterceptor))

	pb.RegisterTelegramAuthServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv, hs
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
