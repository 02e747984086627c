package client

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
)

// grpcAddrFromEnv returns the gRPC server address from FLAKE_GRPC or a default.
func grpcAddrFromEnv() string {
	if addr := os.Getenv("FLAKE_GRPC"); addr != "" {
		return addr
	}
	return "127.0.0.1:50051"
}

// dialGRPC creates a client for the flake gRPC endpoint with insecure
// transport for local/dev.
func dialGRPC() (*grpc.ClientConn, error) {
	return grpc.NewClient(grpcAddrFromEnv(), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// withIDClient provides an IDService client and ensures the connection is closed.
func withIDClient(fn func(flakev1.IDServiceClient) error) error {
	conn, err := dialGRPC()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(flakev1.NewIDServiceClient(conn))
}

// withUserClient provides a UserService client and ensures the connection is closed.
func withUserClient(fn func(flakev1.UserServiceClient) error) error {
	conn, err := dialGRPC()
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return fn(flakev1.NewUserServiceClient(conn))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// commandContext bounds a single CLI call.
func commandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, rpcTimeout)
}
