package grpcserver

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rzbill/flake/internal/services/registration"
	"github.com/rzbill/flake/pkg/id"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// toStatus maps service and generator errors to gRPC status codes.
func toStatus(err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, registration.ErrInvalidArgument), errors.Is(err, id.ErrInvalidID):
		code = codes.InvalidArgument
	case errors.Is(err, registration.ErrRejected):
		code = codes.PermissionDenied
	case errors.Is(err, registration.ErrAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, registration.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, registration.ErrUnauthenticated):
		code = codes.Unauthenticated
	case errors.Is(err, id.ErrClockRegression), errors.Is(err, id.ErrBeforeEpoch):
		code = codes.Unavailable
	case errors.Is(err, id.ErrTimestampOverflow):
		code = codes.FailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}

func loggingInterceptor(logger logpkg.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []logpkg.Field{
			logpkg.Str("method", info.FullMethod),
			logpkg.Str("code", code.String()),
			logpkg.Duration("elapsed", time.Since(start)),
		}
		switch code {
		case codes.OK:
			logger.Debug("rpc", fields...)
		case codes.Internal, codes.Unavailable, codes.FailedPrecondition:
			logger.Error("rpc failed", append(fields, logpkg.Err(err))...)
		default:
			logger.Info("rpc rejected", append(fields, logpkg.Err(err))...)
		}
		return resp, err
	}
}
