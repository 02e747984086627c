package flakev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	IDService_Next_FullMethodName      = "/flake.v1.IDService/Next"
	IDService_NextBatch_FullMethodName = "/flake.v1.IDService/NextBatch"
	IDService_Decompose_FullMethodName = "/flake.v1.IDService/Decompose"
)

// IDServiceClient is the client API for flake.v1.IDService.
type IDServiceClient interface {
	// Next mints one ID.
	Next(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	// NextBatch mints in.Value IDs, returned as decimal strings in order.
	NextBatch(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
	// Decompose splits an ID into its fields.
	Decompose(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type iDServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewIDServiceClient(cc grpc.ClientConnInterface) IDServiceClient {
	return &iDServiceClient{cc}
}

func (c *iDServiceClient) Next(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, IDService_Next_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iDServiceClient) NextBatch(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, IDService_NextBatch_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *iDServiceClient) Decompose(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IDService_Decompose_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// IDServiceServer is the server API for flake.v1.IDService.
type IDServiceServer interface {
	Next(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	NextBatch(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	Decompose(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error)
}

// UnimplementedIDServiceServer can be embedded for forward compatibility.
type UnimplementedIDServiceServer struct{}

func (UnimplementedIDServiceServer) Next(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Next not implemented")
}
func (UnimplementedIDServiceServer) NextBatch(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method NextBatch not implemented")
}
func (UnimplementedIDServiceServer) Decompose(context.Context, *wrapperspb.UInt64Value) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Decompose not implemented")
}

func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&IDService_ServiceDesc, srv)
}

func _IDService_Next_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Next(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDService_Next_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Next(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_NextBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).NextBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDService_NextBatch_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).NextBatch(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _IDService_Decompose_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IDServiceServer).Decompose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IDService_Decompose_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(IDServiceServer).Decompose(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// IDService_ServiceDesc is the grpc.ServiceDesc for flake.v1.IDService.
var IDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "flake.v1.IDService",
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Next", Handler: _IDService_Next_Handler},
		{MethodName: "NextBatch", Handler: _IDService_NextBatch_Handler},
		{MethodName: "Decompose", Handler: _IDService_Decompose_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flake/v1/flake.proto",
}
