package storage

import (
	"context"

	id "leadengine/pkg/domain"
)

// Store is the durable key-value port standing in for browser localStorage.
// Stores are interface-driven so the lifecycle classifier and lookup history
// can run against memory, Redis, or Postgres without rewiring business code.
//
// Get returns sentinel.ErrNotFound (possibly wrapped) for absent keys. Any
// other error means the store is unavailable; callers degrade, never fail.
// Writes are last-write-wins overwrites; there are no transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Scoped confines a store to one visitor: every key is prefixed with the
// visitor ID, the way each browser has its own localStorage.
func Scoped(store Store, visitorID id.VisitorID) Store {
	return &scopedStore{inner: store, prefix: "visitor:" + visitorID.String() + ":"}
}

type scopedStore struct {
	inner  Store
	prefix string
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Set(ctx context.Context, key, value string) error {
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
