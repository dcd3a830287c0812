// Package storage archives invocation results in object storage.
//
// Open binds the MinIO Go client to the configured bucket and returns it as
// a Bucket, which is mocked in unit tests (see core/storage/mocks). Both AWS
// S3 and self-hosted MinIO instances are supported.
//
// The Archive observer writes one JSON document per invocation under
// <prefix>/<entity>/<yyyy>/<mm>/<dd>/<invocation id>.json and can list and
// read them back.
//
// # Usage
//
//	bucket, err := storage.Open(cfg.Storage)
//	archive := storage.NewArchive(bucket, cfg.Storage.Prefix)
//	engine := reconcile.NewEngine(awaiter, reconcile.WithObservers(archive))
package storage
