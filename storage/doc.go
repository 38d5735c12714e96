// Package storage reads chain inputs and writes exported documents through a
// pluggable object store.
//
// # Backends
//
//   - storage/local: local filesystem rooted at a base path
//   - storage/s3: Amazon S3 and S3-compatible stores (MinIO, LocalStack)
//
// Backends register themselves on import:
//
//	import _ "github.com/kbukum/groupchain/storage/local"
//
//	store, err := storage.New(storage.Config{Provider: "local", BasePath: "./out"}, log)
//	err = store.Upload(ctx, "result.json", r)
//
// # Configuration
//
//	storage:
//	  provider: "s3"
//	  bucket: "exports"
//	  region: "eu-west-1"
package storage
