package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	"github.com/rzbill/flake/pkg/id"
)

type idsSvc struct {
	flakev1.UnimplementedIDServiceServer
	gen      *id.Generator
	maxBatch int
}

func (s *idsSvc) Next(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	v, err := s.gen.NextContext(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(uint64(v)), nil
}

func (s *idsSvc) NextBatch(ctx context.Context, req *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	n := int(req.GetValue())
	if n < 1 || n > s.maxBatch {
		return nil, status.Errorf(codes.InvalidArgument, "count must be in [1, %d]", s.maxBatch)
	}
	ids, err := s.gen.NextN(ctx, n)
	if err != nil {
		return nil, toStatus(err)
	}
	return flakev1.IDListToValue(ids), nil
}

func (s *idsSvc) Decompose(_ context.Context, req *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	v := id.ID(req.GetValue())
	p := s.gen.Decompose(v)
	return flakev1.IDParts{
		ID:           v,
		Timestamp:    p.Timestamp,
		DatacenterID: p.DatacenterID,
		MachineID:    p.MachineID,
		Sequence:     p.Sequence,
		Time:         s.gen.Time(v),
	}.ToStruct(), nil
}
