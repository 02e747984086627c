// Package httpserver provides the JSON gateway: ID minting and decoding,
// generator stats, user registration and lookup, and a health probe.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Config: config.Default()})
//	reg, _ := registration.New(rt.Generator(), rt.Users(), registration.Options{})
//	s := httpserver.New(rt, reg)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver
