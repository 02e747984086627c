// Package grpcserver hosts the flake.v1 gRPC services (IDService and
// UserService) plus the standard grpc.health.v1 service.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: config.Default()})
//	reg, _ := registration.New(rt.Generator(), rt.Users(), registration.Options{})
//	s := grpcserver.New(rt, reg)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":50051")
package grpcserver
