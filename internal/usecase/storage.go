package usecase

import "context"

// ObjectStore is the slice of blob storage the usecases need. Satisfied by
// storage.Store.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
