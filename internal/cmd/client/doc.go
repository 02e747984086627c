// Package client provides the `flake` command-line client.
//
// Commands talk to the flake gRPC endpoint. The address is read from the
// FLAKE_GRPC environment variable (default 127.0.0.1:50051).
//
// Usage
//
//	flake id next
//	flake id next --count 5 --hex
//	flake id decode 0x0a1b2c3d4e5f6071
//
//	flake user register --username ann --password s3cret \
//	    --fullname "Ann Example" --age 30 --address "1 Main St"
//	flake user get 123456789012345678
//	flake user login --username ann --password s3cret
package client
