package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// GetSettings returns the current store settings.
// Если настройки еще не сохранялись, возвращает значения по умолчанию.
func (s *Storage) GetSettings(ctx context.Context) (*api.StoreSettings, error) {
	var body string
	var updatedAt time.Time

	err := s.db.QueryRowContext(ctx,
		`SELECT body, updated_at FROM store_settings WHERE id = 1`).Scan(&body, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := api.DefaultStoreSettings()
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := &api.StoreSettings{}
	if err := json.Unmarshal([]byte(body), settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	settings.UpdatedAt = updatedAt

	return settings, nil
}

// SaveSettings replaces the store settings
func (s *Storage) SaveSettings(ctx context.Context, settings *api.StoreSettings) error {
	body, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	query := `
		INSERT INTO store_settings (id, body, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, string(body), settings.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
