package ports

import "context"

// KeyValueStore is the durable medium behind the guest identity and the
// key-value session repository. Get reports domain.ErrKeyNotFound for
// missing keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	PutAll(ctx context.Context, entries map[string]string) error
	Delete(ctx context.Context, key string) error
}
