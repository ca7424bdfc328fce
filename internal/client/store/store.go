// Package store держит состояние витрины на клиенте: кэш каталога,
// отзывы, настройки магазина, wishlist и сессию пользователя.
// Секции user, product и storeSettings персистятся после каждой мутации;
// отзывы и wishlist живут только в памяти.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/rehydrate"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// Store представляет состояние витрины одного инстанса
type Store struct {
	logger *slog.Logger
	state  storage.StateStorage

	mu       sync.RWMutex
	user     *api.UserInfo
	products []api.Product
	reviews  []api.Review
	settings *api.StoreSettings
	wishlist []api.WishlistItem

	// fences защищают каждую коллекцию от гонки re-fetch запросов
	productsFence fence
	reviewsFence  fence
	settingsFence fence
}

// New создает Store, восстанавливая персистентную часть состояния
func New(ctx context.Context, logger *slog.Logger, state storage.StateStorage) (*Store, error) {
	snapshot, err := rehydrate.Load(ctx, logger, state)
	if err != nil {
		return nil, err
	}

	return &Store{
		logger:   logger,
		state:    state,
		user:     snapshot.User,
		products: snapshot.Products,
		settings: snapshot.StoreSettings,
		reviews:  []api.Review{},
		wishlist: []api.WishlistItem{},
	}, nil
}

// persist записывает персистентные секции состояния.
// Вызывается под уже взятым mu.
func (s *Store) persist(ctx context.Context) {
	snapshot := &rehydrate.Snapshot{
		User:          s.user,
		Products:      s.products,
		StoreSettings: s.settings,
	}
	if err := rehydrate.Save(ctx, s.state, snapshot); err != nil {
		s.logger.Warn("failed to persist state snapshot", "error", err)
	}
}

// User возвращает текущую сессию пользователя (nil, если не залогинен)
func (s *Store) User() *api.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser запоминает сессию пользователя
func (s *Store) SetUser(ctx context.Context, user *api.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.persist(ctx)
}

// Products возвращает кэш каталога
func (s *Store) Products() []api.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// BeginProductsFetch регистрирует новый re-fetch каталога
func (s *Store) BeginProductsFetch() uint64 {
	return s.productsFence.begin()
}

// CommitProducts применяет ответ re-fetch каталога.
// Возвращает false, если ответ устарел и был отброшен.
func (s *Store) CommitProducts(ctx context.Context, seq uint64, products []api.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Проверка fence и запись держат одну блокировку: иначе устаревший
	// ответ может записаться поверх уже применённого более нового.
	if !s.productsFence.commit(seq) {
		s.logger.Debug("discarding stale products response", "seq", seq)
		return false
	}

	s.products = products
	s.persist(ctx)
	return true
}

// Reviews возвращает кэш отзывов
func (s *Store) Reviews() []api.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews
}

// BeginReviewsFetch регистрирует новый re-fetch отзывов
func (s *Store) BeginReviewsFetch() uint64 {
	return s.reviewsFence.begin()
}

// CommitReviews применяет ответ re-fetch отзывов.
// Отзывы не персистятся.
func (s *Store) CommitReviews(seq uint64, reviews []api.Review) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.reviewsFence.commit(seq) {
		s.logger.Debug("discarding stale reviews response", "seq", seq)
		return false
	}

	s.reviews = reviews
	return true
}

// Settings возвращает настройки магазина
func (s *Store) Settings() *api.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// BeginSettingsFetch регистрирует новый re-fetch настроек
func (s *Store) BeginSettingsFetch() uint64 {
	return s.settingsFence.begin()
}

// CommitSettings применяет ответ re-fetch настроек
func (s *Store) CommitSettings(ctx context.Context, seq uint64, settings *api.StoreSettings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settingsFence.commit(seq) {
		s.logger.Debug("discarding stale settings response", "seq", seq)
		return false
	}

	s.settings = settings
	s.persist(ctx)
	return true
}

// Wishlist возвращает wishlist текущего пользователя
func (s *Store) Wishlist() []api.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlist
}

// SetWishlist заменяет wishlist целиком (ответ сервера авторитетен)
func (s *Store) SetWishlist(items []api.WishlistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlist = items
}

// Reset сбрасывает состояние к значениям по умолчанию (logout)
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := rehydrate.DefaultSnapshot()
	s.user = snapshot.User
	s.products = snapshot.Products
	s.settings = snapshot.StoreSettings
	s.reviews = []api.Review{}
	s.wishlist = []api.WishlistItem{}
	s.persist(ctx)
}
