package storage

import (
	"context"
)

// StateStorage defines interface for the persisted client state snapshot.
// Это самый нижний слой: он работает с сырыми байтами снапшота и ничего
// не знает о его форме. Версионирование и миграции живут в пакете rehydrate.
type StateStorage interface {
	// SaveState stores the serialized state snapshot as-is
	SaveState(ctx context.Context, data []byte) error

	// GetState retrieves the serialized state snapshot
	// Returns ErrStateNotFound if no snapshot exists
	GetState(ctx context.Context) ([]byte, error)

	// DeleteState removes the persisted snapshot (full reset)
	DeleteState(ctx context.Context) error
}
