package handlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/images"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// testLogger returns a quiet logger for tests
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testJWTConfig returns a JWT config for tests
func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret-key"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 30 * 24 * time.Hour,
	}
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // email -> User
	createError  error
	getUserError error
	verified     []string // track MarkVerified calls
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) MarkVerified(ctx context.Context, userID string) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.Verified = true
			m.verified = append(m.verified, userID)
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens map[string]*models.RefreshToken // token -> RefreshToken
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.tokens[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return rt, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, token)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	count := 0
	for t, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, t)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	count := 0
	now := time.Now()
	for t, rt := range m.tokens {
		if now.After(rt.ExpiresAt) {
			delete(m.tokens, t)
			count++
		}
	}
	return count, nil
}

// mockOTPStorage is a mock implementation of OTPStorage for testing
type mockOTPStorage struct {
	codes   map[string]*models.OTPCode // email -> code
	deleted []string
}

func newMockOTPStorage() *mockOTPStorage {
	return &mockOTPStorage{codes: make(map[string]*models.OTPCode)}
}

func (m *mockOTPStorage) UpsertCode(ctx context.Context, code *models.OTPCode) error {
	m.codes[code.Email] = code
	return nil
}

func (m *mockOTPStorage) GetCode(ctx context.Context, email string) (*models.OTPCode, error) {
	code, ok := m.codes[email]
	if !ok {
		return nil, storage.ErrOTPNotFound
	}
	return code, nil
}

func (m *mockOTPStorage) DeleteCode(ctx context.Context, email string) error {
	delete(m.codes, email)
	m.deleted = append(m.deleted, email)
	return nil
}

// mockMailer is a mock implementation of mail.Sender for testing
type mockMailer struct {
	sentTo    []string
	sentCodes []string
	sendError error
}

func (m *mockMailer) SendOTP(ctx context.Context, email, code string) error {
	if m.sendError != nil {
		return m.sendError
	}
	m.sentTo = append(m.sentTo, email)
	m.sentCodes = append(m.sentCodes, code)
	return nil
}

// mockProductStorage is a mock implementation of ProductStorage for testing
type mockProductStorage struct {
	products    map[string]*api.Product
	createError error
}

func newMockProductStorage() *mockProductStorage {
	return &mockProductStorage{products: make(map[string]*api.Product)}
}

func (m *mockProductStorage) CreateProduct(ctx context.Context, product *api.Product) error {
	if m.createError != nil {
		return m.createError
	}
	for _, p := range m.products {
		if p.Name == product.Name {
			return storage.ErrProductAlreadyExists
		}
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductStorage) GetProduct(ctx context.Context, productID string) (*api.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductStorage) ListProducts(ctx context.Context) ([]api.Product, error) {
	result := make([]api.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProductStorage) UpdateProduct(ctx context.Context, product *api.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return storage.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductStorage) DeleteProduct(ctx context.Context, productID string) error {
	if _, ok := m.products[productID]; !ok {
		return storage.ErrProductNotFound
	}
	delete(m.products, productID)
	return nil
}

// mockReviewStorage is a mock implementation of ReviewStorage for testing
type mockReviewStorage struct {
	reviews map[string]*api.Review
}

func newMockReviewStorage() *mockReviewStorage {
	return &mockReviewStorage{reviews: make(map[string]*api.Review)}
}

func (m *mockReviewStorage) CreateReview(ctx context.Context, review *api.Review) error {
	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.ProductID == review.ProductID {
			return storage.ErrReviewAlreadyExists
		}
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewStorage) GetReview(ctx context.Context, reviewID string) (*api.Review, error) {
	r, ok := m.reviews[reviewID]
	if !ok {
		return nil, storage.ErrReviewNotFound
	}
	return r, nil
}

func (m *mockReviewStorage) ListReviews(ctx context.Context, productID string) ([]api.Review, error) {
	result := make([]api.Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		if productID == "" || r.ProductID == productID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockReviewStorage) DeleteReview(ctx context.Context, reviewID string) error {
	if _, ok := m.reviews[reviewID]; !ok {
		return storage.ErrReviewNotFound
	}
	delete(m.reviews, reviewID)
	return nil
}

// mockWishlistStorage is a mock implementation of WishlistStorage for testing
type mockWishlistStorage struct {
	items map[string]*api.WishlistItem
}

func newMockWishlistStorage() *mockWishlistStorage {
	return &mockWishlistStorage{items: make(map[string]*api.WishlistItem)}
}

func (m *mockWishlistStorage) AddItem(ctx context.Context, item *api.WishlistItem) error {
	for _, existing := range m.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			existing.Quantity = item.Quantity
			return nil
		}
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockWishlistStorage) ListItems(ctx context.Context, userID string) ([]api.WishlistItem, error) {
	result := make([]api.WishlistItem, 0)
	for _, item := range m.items {
		if item.UserID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockWishlistStorage) RemoveItem(ctx context.Context, userID, itemID string) error {
	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return storage.ErrWishlistItemNotFound
	}
	delete(m.items, itemID)
	return nil
}

func (m *mockWishlistStorage) ClearItems(ctx context.Context, userID string) error {
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
		}
	}
	return nil
}

// mockSliderStorage is a mock implementation of SliderStorage for testing
type mockSliderStorage struct {
	images map[string]*api.SliderImage
}

func newMockSliderStorage() *mockSliderStorage {
	return &mockSliderStorage{images: make(map[string]*api.SliderImage)}
}

func (m *mockSliderStorage) CreateImage(ctx context.Context, image *api.SliderImage) error {
	m.images[image.ID] = image
	return nil
}

func (m *mockSliderStorage) ListImages(ctx context.Context) ([]api.SliderImage, error) {
	result := make([]api.SliderImage, 0, len(m.images))
	for _, img := range m.images {
		result = append(result, *img)
	}
	return result, nil
}

func (m *mockSliderStorage) GetImage(ctx context.Context, imageID string) (*api.SliderImage, error) {
	img, ok := m.images[imageID]
	if !ok {
		return nil, storage.ErrSliderImageNotFound
	}
	return img, nil
}

func (m *mockSliderStorage) DeleteImage(ctx context.Context, imageID string) error {
	if _, ok := m.images[imageID]; !ok {
		return storage.ErrSliderImageNotFound
	}
	delete(m.images, imageID)
	return nil
}

// mockUploader is a mock implementation of images.Uploader for testing
type mockUploader struct {
	uploadError   error
	deleteError   error
	uploaded      []string // filenames
	deletedTokens []string
}

func (m *mockUploader) Upload(ctx context.Context, filename string, data []byte) (*images.UploadResult, error) {
	if m.uploadError != nil {
		return nil, m.uploadError
	}
	m.uploaded = append(m.uploaded, filename)
	return &images.UploadResult{
		URL:         "https://images.example.com/" + filename,
		DeleteToken: "token-" + filename,
	}, nil
}

func (m *mockUploader) Delete(ctx context.Context, deleteToken string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.deletedTokens = append(m.deletedTokens, deleteToken)
	return nil
}

// mockSettingsStorage is a mock implementation of SettingsStorage for testing
type mockSettingsStorage struct {
	settings *api.StoreSettings
}

func (m *mockSettingsStorage) GetSettings(ctx context.Context) (*api.StoreSettings, error) {
	if m.settings == nil {
		defaults := api.DefaultStoreSettings()
		return &defaults, nil
	}
	return m.settings, nil
}

func (m *mockSettingsStorage) SaveSettings(ctx context.Context, settings *api.StoreSettings) error {
	m.settings = settings
	return nil
}
