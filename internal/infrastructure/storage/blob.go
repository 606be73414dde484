package storage

import (
	"context"
	"errors"
)

// ErrNotFound - блоба с таким ключом нет (первый запуск).
var ErrNotFound = errors.New("blob not found")

// BlobStore - внешнее key-value хранилище, куда сессия сохраняется целиком.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutAll пишет все блобы одной операцией: либо все, либо ни одного.
	PutAll(ctx context.Context, blobs map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
