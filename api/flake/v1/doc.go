// Package flakev1 declares the flake.v1 gRPC services. Requests and
// responses are protobuf well-known types, so no generated message code is
// needed; the service descriptors below follow the layout protoc-gen-go-grpc
// emits. Structured payloads travel as google.protobuf.Struct and are
// converted with the helpers in messages.go. IDs inside a Struct are decimal
// strings because Struct numbers are doubles.
package flakev1
