// Package client is the gRPC client of the tgauth server used by tgctl.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const callTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.TelegramAuthClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL. accessToken may be empty for
// the unauthenticated calls. Extra dial options are appended.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewTelegramAuthClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, pb.NewStruct(nil))
	if err != nil {
		return s.mapError(err)
	}

	if pb.Fields(resp)["status"] != "OK" {
		return ErrUnavailable
	}

	return nil

}

// Authenticate sends widget fields and returns the response fields.
func (s *GRPCClient) Authenticate(ctx context.Context, fields map[string]string) (map[string]string, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Authenticate(ctx, pb.NewStruct(fields))
	if err != nil {
		return nil, s.mapError(err)
	}
	return pb.Fields(resp), nil
}

// Connect links the widget fields' account to the token's user and
// returns the resulting status.
func (s *GRPCClient) Connect(ctx context.Context, fields map[string]string) (string, error) {
	return s.callStatus(ctx, s.client.Connect, fields)
}

func (s *GRPCClient) Reconnect(ctx context.Context, fields map[string]string) (string, error) {
	return s.callStatus(ctx, s.client.Reconnect, fields)
}

func (s *GRPCClient) Revoke(ctx context.Context) (string, error) {
	return s.callStatus(ctx, s.client.Revoke, nil)
}

func (s *GRPCClient) Describe(ctx context.Context) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Describe(ctx, pb.NewStruct(nil))
	if err != nil {
		return "", s.mapError(err)
	}
	return pb.Fields(resp)["display_name"], nil
}

type call func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (s *GRPCClient) callStatus(ctx context.Context, fn call, fields map[string]string) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := fn(ctx, pb.NewStruct(fields))
	if err != nil {
		return "", s.mapError(err)
	}
	return pb.Fields(resp)["status"], nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.FailedPrecondition:
		return ErrDisabled
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
