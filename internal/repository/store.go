package repository

import "context"

// Store is the key-value persistence used for projects and bot state.
// Values are JSON documents. Get returns entity.ErrKeyNotFound for missing keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
