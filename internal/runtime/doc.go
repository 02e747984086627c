// Package runtime wires configuration, the ID generator and the user store
// into a single node. It exposes Open/Close, a health check and accessors
// used by the transports.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: cfg})
//	defer rt.Close()
//	_ = rt.CheckHealth(context.Background())
//	v, _ := rt.Generator().Next()
package runtime
