package kv

import "context"

// Store is the persisted key-value contract backing cart and session
// state. Get reports absence through its second return value; Remove of a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
