package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
)

var stateKey = []byte("snapshot")

// SaveState stores the serialized state snapshot as-is
func (s *Storage) SaveState(ctx context.Context, data []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if err := bucket.Put(stateKey, data); err != nil {
			return fmt.Errorf("failed to save state snapshot: %w", err)
		}

		return nil
	})
}

// GetState retrieves the serialized state snapshot
func (s *Storage) GetState(ctx context.Context) ([]byte, error) {
	var data []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		v := bucket.Get(stateKey)
		if v == nil {
			return storage.ErrStateNotFound
		}

		// Bolt переиспользует буферы после завершения транзакции,
		// поэтому копируем
		data = make([]byte, len(v))
		copy(data, v)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return data, nil
}

// DeleteState removes the persisted snapshot (full reset)
func (s *Storage) DeleteState(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if err := bucket.Delete(stateKey); err != nil {
			return fmt.Errorf("failed to delete state snapshot: %w", err)
		}

		return nil
	})
}
