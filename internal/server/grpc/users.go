package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/internal/services/registration"
	"github.com/rzbill/flake/pkg/id"
)

type usersSvc struct {
	flakev1.UnimplementedUserServiceServer
	reg *registration.Service
}

func (s *usersSvc) Register(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := flakev1.RegisterRequestFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := s.reg.Register(ctx, registration.Request(req))
	if err != nil {
		return nil, toStatus(err)
	}
	return flakev1.RegisterResponse{UserID: resp.UserID, Message: resp.Message}.ToStruct(), nil
}

func (s *usersSvc) GetUser(ctx context.Context, in *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	p, err := s.reg.Lookup(ctx, id.ID(in.GetValue()))
	if err != nil {
		return nil, toStatus(err)
	}
	return flakev1.UserProfile(p).ToStruct(), nil
}

func (s *usersSvc) Authenticate(ctx context.Context, in *structpb.Struct) (*wrapperspb.UInt64Value, error) {
	c, err := flakev1.CredentialsFromStruct(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	userID, err := s.reg.Authenticate(ctx, c.Username, c.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(uint64(userID)), nil
}
