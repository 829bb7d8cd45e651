// Package proto defines the tgauth.TelegramAuth gRPC service. Requests and
// responses are google.protobuf.Struct messages carrying string fields, so
// the service needs no generated message types.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "tgauth.TelegramAuth"

const (
	TelegramAuth_Ping_FullMethodName         = "/tgauth.TelegramAuth/Ping"
	TelegramAuth_Authenticate_FullMethodName = "/tgauth.TelegramAuth/Authenticate"
	TelegramAuth_Connect_FullMethodName      = "/tgauth.TelegramAuth/Connect"
	TelegramAuth_Reconnect_FullMethodName    = "/tgauth.TelegramAuth/Reconnect"
	TelegramAuth_Revoke_FullMethodName       = "/tgauth.TelegramAuth/Revoke"
	TelegramAuth_Describe_FullMethodName     = "/tgauth.TelegramAuth/Describe"
)

// TelegramAuthClient is the client API for the TelegramAuth service.
type TelegramAuthClient interface {
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Connect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Reconnect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Revoke(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Describe(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type telegramAuthClient struct {
	cc grpc.ClientConnInterface
}

func NewTelegramAuthClient(cc grpc.ClientConnInterface) TelegramAuthClient {
	return &telegramAuthClient{cc}
}

func (c *telegramAuthClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *telegramAuthClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Ping_FullMethodName, in, opts...)
}

func (c *telegramAuthClient) Authenticate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Authenticate_FullMethodName, in, opts...)
}

func (c *telegramAuthClient) Connect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Connect_FullMethodName, in, opts...)
}

func (c *telegramAuthClient) Reconnect(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Reconnect_FullMethodName, in, opts...)
}

func (c *telegramAuthClient) Revoke(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Revoke_FullMethodName, in, opts...)
}

func (c *telegramAuthClient) Describe(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TelegramAuth_Describe_FullMethodName, in, opts...)
}

// TelegramAuthServer is the server API for the TelegramAuth service.
type TelegramAuthServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Connect(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reconnect(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Revoke(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Describe(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedTelegramAuthServer can be embedded to have forward
// compatible implementations.
type UnimplementedTelegramAuthServer struct{}

func (UnimplementedTelegramAuthServer) Ping(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedTelegramAuthServer) Authenticate(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Authenticate not implemented")
}
func (UnimplementedTelegramAuthServer) Connect(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Connect not implemented")
}
func (UnimplementedTelegramAuthServer) Reconnect(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reconnect not implemented")
}
func (UnimplementedTelegramAuthServer) Revoke(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Revoke not implemented")
}
func (UnimplementedTelegramAuthServer) Describe(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Describe not implemented")
}

func RegisterTelegramAuthServer(s grpc.ServiceRegistrar, srv TelegramAuthServer) {
	s.RegisterService(&TelegramAuth_ServiceDesc, srv)
}

type unaryCall func(TelegramAuthServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TelegramAuthServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TelegramAuthServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TelegramAuth_ServiceDesc is the grpc.ServiceDesc for the TelegramAuth
// service.
var TelegramAuth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TelegramAuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(TelegramAuth_Ping_FullMethodName, TelegramAuthServer.Ping)},
		{MethodName: "Authenticate", Handler: unaryHandler(TelegramAuth_Authenticate_FullMethodName, TelegramAuthServer.Authenticate)},
		{MethodName: "Connect", Handler: unaryHandler(TelegramAuth_Connect_FullMethodName, TelegramAuthServer.Connect)},
		{MethodName: "Reconnect", Handler: unaryHandler(TelegramAuth_Reconnect_FullMethodName, TelegramAuthServer.Reconnect)},
		{MethodName: "Revoke", Handler: unaryHandler(TelegramAuth_Revoke_FullMethodName, TelegramAuthServer.Revoke)},
		{MethodName: "Describe", Handler: unaryHandler(TelegramAuth_Describe_FullMethodName, TelegramAuthServer.Describe)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tgauth.proto",
}
