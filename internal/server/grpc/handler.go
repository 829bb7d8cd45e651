package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tgauth/internal/common"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"github.com/dmitrijs2005/tgauth/internal/server/linking"
	"github.com/dmitrijs2005/tgauth/internal/telegram"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	return pb.NewStruct(map[string]string{"status": "OK"}), nil

}

func (s *GRPCServer) Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	res, err := s.auth.Authenticate(ctx, pb.Fields(req))
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	if !res.Outcome.OK() {
		return nil, s.mapError(ctx, res.Outcome.Err())
	}

	id := res.Outcome.Identity()
	out := map[string]string{
		"result":       "success",
		"uid":          id.ID,
		"display_name": id.DisplayName(),
		"linked":       "false",
	}
	if res.Linked {
		out["linked"] = "true"
		out["user_id"] = res.UserID
		out["access_token"] = res.AccessToken
	}

	return pb.NewStruct(out), nil

}

func (s *GRPCServer) Connect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.link(ctx, req, s.auth.Connect)
}

func (s *GRPCServer) Reconnect(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.link(ctx, req, s.auth.Reconnect)
}

type linkFunc func(ctx context.Context, userID string, fields map[string]string) (linking.Result, error)

func (s *GRPCServer) link(ctx context.Context, req *structpb.Struct, fn linkFunc) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	res, err := fn(ctx, userID, pb.Fields(req))
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return resultStruct(res), nil

}

func (s *GRPCServer) Revoke(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	res, err := s.auth.Revoke(ctx, userID)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return resultStruct(res), nil

}

func (s *GRPCServer) Describe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	name, err := s.auth.Describe(ctx, userID)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return pb.NewStruct(map[string]string{"display_name": name}), nil

}

func resultStruct(res linking.Result) *structpb.Struct {
	out := map[string]string{"status": string(res.Status)}
	if res.Identity != nil {
		out["uid"] = res.Identity.ProviderUID
	}
	return pb.NewStruct(out)
}

// mapError turns service errors into gRPC statuses. A validation failure
// is reported with its user-facing reason; internal details stay in the
// log.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	var f *telegram.Failure

	switch {
	case errors.As(err, &f):
		return status.Error(codes.Unauthenticated, f.Error())
	case errors.Is(err, linking.ErrConflict), errors.Is(err, linking.ErrUserLinked):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, linking.ErrNoUser):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, common.ErrorSecretUnavailable):
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Unavailable, "authentication unavailable")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
