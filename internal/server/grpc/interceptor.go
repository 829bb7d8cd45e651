package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"github.com/dmitrijs2005/tgauth/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const requestIDHeaderName = "x-request-id"

// methods acting on behalf of a logged-in user
var protectedMethods = map[string]bool{
	pb.TelegramAuth_Connect_FullMethodName:   true,
	pb.TelegramAuth_Reconnect_FullMethodName: true,
	pb.TelegramAuth_Revoke_FullMethodName:    true,
	pb.TelegramAuth_Describe_FullMethodName:  true,
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		userId, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
			}
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}

		ctx = context.WithValue(ctx, userIDKey, userId)

	}

	return handler(ctx, req)
}

// requestLogInterceptor tags every call with a request id, taken from the
// x-request-id header when the caller sent one.
func (s *GRPCServer) requestLogInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	requestID := firstMetadata(ctx, requestIDHeaderName)
	if requestID == "" {
		var err error
		if requestID, err = common.MakeRandHexString(8); err != nil {
			return nil, status.Error(codes.Internal, "internal error")
		}
	}
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "rpc",
		"method", info.FullMethod,
		"request_id", requestID,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
