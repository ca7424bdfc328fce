package sqlite

import (
	"context"
	"fmt"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// AddItem adds a product to the user's wishlist.
// Повторное добавление того же товара обновляет количество.
func (s *Storage) AddItem(ctx context.Context, item *api.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, quantity, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			quantity = excluded.quantity,
			added_at = excluded.added_at
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// ListItems returns all wishlist items of the user
func (s *Storage) ListItems(ctx context.Context, userID string) ([]api.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, added_at
		FROM wishlist_items
		WHERE user_id = ?
		ORDER BY added_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	defer rows.Close()

	items := make([]api.WishlistItem, 0)
	for rows.Next() {
		var item api.WishlistItem
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Quantity,
			&item.AddedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishlist items: %w", err)
	}

	return items, nil
}

// RemoveItem removes an item from the user's wishlist
func (s *Storage) RemoveItem(ctx context.Context, userID, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrWishlistItemNotFound
	}

	return nil
}

// ClearItems removes all wishlist items of the user
func (s *Storage) ClearItems(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}

	return nil
}
