package storage

import (
	"context"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// ProductStorage defines interface for product catalog persistence
type ProductStorage interface {
	// CreateProduct creates a new product
	// Returns ErrProductAlreadyExists if name is taken
	CreateProduct(ctx context.Context, product *api.Product) error

	// GetProduct retrieves product by ID
	// Returns ErrProductNotFound if product doesn't exist
	GetProduct(ctx context.Context, productID string) (*api.Product, error)

	// ListProducts returns all products ordered by creation time
	ListProducts(ctx context.Context) ([]api.Product, error)

	// UpdateProduct updates an existing product
	// Returns ErrProductNotFound if product doesn't exist
	UpdateProduct(ctx context.Context, product *api.Product) error

	// DeleteProduct removes a product
	// Returns ErrProductNotFound if product doesn't exist
	DeleteProduct(ctx context.Context, productID string) error
}

// ReviewStorage defines interface for review persistence
type ReviewStorage interface {
	// CreateReview creates a new review
	// Returns ErrReviewAlreadyExists if the user already reviewed the product
	CreateReview(ctx context.Context, review *api.Review) error

	// GetReview retrieves review by ID
	// Returns ErrReviewNotFound if review doesn't exist
	GetReview(ctx context.Context, reviewID string) (*api.Review, error)

	// ListReviews returns reviews, optionally filtered by product.
	// Пустой productID означает все отзывы.
	ListReviews(ctx context.Context, productID string) ([]api.Review, error)

	// DeleteReview removes a review
	// Returns ErrReviewNotFound if review doesn't exist
	DeleteReview(ctx context.Context, reviewID string) error
}

// SettingsStorage defines interface for store settings persistence.
// Настройки существуют в единственном экземпляре.
type SettingsStorage interface {
	// GetSettings returns the current store settings.
	// Если настройки еще не сохранялись, возвращает значения по умолчанию.
	GetSettings(ctx context.Context) (*api.StoreSettings, error)

	// SaveSettings replaces the store settings
	SaveSettings(ctx context.Context, settings *api.StoreSettings) error
}

// WishlistStorage defines interface for wishlist/cart persistence
type WishlistStorage interface {
	// AddItem adds a product to the user's wishlist.
	// Повторное добавление того же товара обновляет количество.
	AddItem(ctx context.Context, item *api.WishlistItem) error

	// ListItems returns all wishlist items of the user
	ListItems(ctx context.Context, userID string) ([]api.WishlistItem, error)

	// RemoveItem removes an item from the user's wishlist
	// Returns ErrWishlistItemNotFound if item doesn't exist
	RemoveItem(ctx context.Context, userID, itemID string) error

	// ClearItems removes all wishlist items of the user.
	// Пустой wishlist не считается ошибкой.
	ClearItems(ctx context.Context, userID string) error
}

// SliderStorage defines interface for slider image persistence
type SliderStorage interface {
	// CreateImage stores a slider image record
	CreateImage(ctx context.Context, image *api.SliderImage) error

	// ListImages returns all slider images ordered by position
	ListImages(ctx context.Context) ([]api.SliderImage, error)

	// GetImage retrieves slider image by ID
	// Returns ErrSliderImageNotFound if image doesn't exist
	GetImage(ctx context.Context, imageID string) (*api.SliderImage, error)

	// DeleteImage removes a slider image record
	// Returns ErrSliderImageNotFound if image doesn't exist
	DeleteImage(ctx context.Context, imageID string) error
}
