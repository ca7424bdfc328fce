package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// CatalogClient описывает часть серверного API, нужную для re-fetch коллекций
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]api.Product, error)
	ListReviews(ctx context.Context, productID string) ([]api.Review, error)
	GetSettings(ctx context.Context) (*api.StoreSettings, error)
}

// Refresher перечитывает коллекции с сервера в Store.
// Каждый re-fetch проходит через fence коллекции: номер выдается до
// запроса, ответ применяется только если не успел закоммититься более
// новый запрос той же коллекции.
type Refresher struct {
	logger *slog.Logger
	client CatalogClient
	store  *Store
}

// NewRefresher создает Refresher
func NewRefresher(logger *slog.Logger, client CatalogClient, store *Store) *Refresher {
	return &Refresher{
		logger: logger,
		client: client,
		store:  store,
	}
}

// RefreshProducts перечитывает каталог
func (r *Refresher) RefreshProducts(ctx context.Context) error {
	seq := r.store.BeginProductsFetch()

	products, err := r.client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	if !r.store.CommitProducts(ctx, seq, products) {
		r.logger.Debug("products refresh superseded by a newer one")
	}
	return nil
}

// RefreshReviews перечитывает все отзывы
func (r *Refresher) RefreshReviews(ctx context.Context) error {
	seq := r.store.BeginReviewsFetch()

	reviews, err := r.client.ListReviews(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to fetch reviews: %w", err)
	}

	if !r.store.CommitReviews(seq, reviews) {
		r.logger.Debug("reviews refresh superseded by a newer one")
	}
	return nil
}

// RefreshSettings перечитывает настройки магазина
func (r *Refresher) RefreshSettings(ctx context.Context) error {
	seq := r.store.BeginSettingsFetch()

	settings, err := r.client.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch settings: %w", err)
	}

	if !r.store.CommitSettings(ctx, seq, settings) {
		r.logger.Debug("settings refresh superseded by a newer one")
	}
	return nil
}
