// Package pebblestore provides a thin wrapper around Pebble with an fsync
// policy, batches, prefix scans and a minimal metrics hook. The users
// package builds its Pebble-backed store on top of it.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data/store",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	b := db.NewBatch()
//	_ = b.Set([]byte("user/..."), payload, nil)
//	_ = db.CommitBatch(ctx, b)
//	b.Close()
package pebblestore
