// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface covering the calls the
// service needs to read and publish item schema dumps. The same client works against
// AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface keeps storage mockable in unit tests (see core/storage/mocks).
//
//   - BucketExists / MakeBucket: prepare the target bucket before publishing.
//   - PutObject: upload a schema dump.
//   - GetObject: stream a schema dump for decoding.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	reader, err := client.GetObject(ctx, config.Bucket, "schema/items.json", minio.GetObjectOptions{})
package storage
