package api

import "time"

// Product представляет товар каталога (авто/мото запчасти)
type Product struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Description   string    `json:"description,omitempty"`
	Label         string    `json:"label,omitempty"` // "new", "sale", "hot" и т.п.
	Images        []string  `json:"images,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Stock         int       `json:"stock"`
}

// Review представляет отзыв покупателя о товаре
type Review struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
}

// SliderImage представляет баннер главной страницы, размещенный
// на стороннем image-хостинге
type SliderImage struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	ImageURL    string    `json:"image_url"`
	DeleteToken string    `json:"-"` // токен удаления на хостинге, наружу не отдается
	Position    int       `json:"position"`
}

// WishlistItem представляет позицию wishlist/корзины пользователя
type WishlistItem struct {
	AddedAt   time.Time `json:"added_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// FeatureFlags включает/выключает функциональность магазина целиком
type FeatureFlags struct {
	EnableReviews  bool `json:"enable_reviews"`
	EnableWishlist bool `json:"enable_wishlist"`
	EnableOTPLogin bool `json:"enable_otp_login"`
}

// PageAccessFlags управляет доступностью отдельных страниц витрины
type PageAccessFlags struct {
	Dashboard bool `json:"dashboard"`
	Wishlist  bool `json:"wishlist"`
	Reviews   bool `json:"reviews"`
}

// CustomerExperienceFlags управляет элементами витрины для покупателя
type CustomerExperienceFlags struct {
	ShowSlider     bool `json:"show_slider"`
	ShowLabels     bool `json:"show_labels"`
	ShowOutOfStock bool `json:"show_out_of_stock"`
}

// StoreMetadata содержит общие реквизиты магазина
type StoreMetadata struct {
	Name         string `json:"name"`
	Tagline      string `json:"tagline,omitempty"`
	SupportEmail string `json:"support_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Currency     string `json:"currency"`
}

// StoreSettings представляет настройки магазина, общие для всех инстансов.
// Мутируются только из админского дашборда.
type StoreSettings struct {
	UpdatedAt          time.Time               `json:"updated_at"`
	Store              StoreMetadata           `json:"store"`
	Features           FeatureFlags            `json:"features"`
	PageAccess         PageAccessFlags         `json:"page_access"`
	CustomerExperience CustomerExperienceFlags `json:"customer_experience"`
}

// DefaultStoreSettings возвращает настройки магазина по умолчанию.
// Используются при первом старте сервера и при сбросе клиентского снапшота.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		Store: StoreMetadata{
			Name:     "MR BikeModz",
			Tagline:  "Auto & bike parts",
			Currency: "INR",
		},
		Features: FeatureFlags{
			EnableReviews:  true,
			EnableWishlist: true,
			EnableOTPLogin: true,
		},
		PageAccess: PageAccessFlags{
			Dashboard: true,
			Wishlist:  true,
			Reviews:   true,
		},
		CustomerExperience: CustomerExperienceFlags{
			ShowSlider:     true,
			ShowLabels:     true,
			ShowOutOfStock: false,
		},
	}
}

// CreateProductRequest представляет запрос на создание товара
type CreateProductRequest struct {
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	Description   string   `json:"description"`
	Label         string   `json:"label"`
	Images        []string `json:"images"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	Stock         int      `json:"stock"`
}

// UpdateProductRequest представляет частичное обновление товара.
// nil-поля не изменяются.
type UpdateProductRequest struct {
	Name          *string   `json:"name,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Brand         *string   `json:"brand,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Label         *string   `json:"label,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Stock         *int      `json:"stock,omitempty"`
}

// CreateReviewRequest представляет запрос на создание отзыва
type CreateReviewRequest struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
}

// AddWishlistItemRequest представляет запрос на добавление в wishlist/корзину
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateSliderImageRequest представляет запрос на загрузку баннера.
// Data содержит бинарное содержимое картинки (base64 в JSON).
type CreateSliderImageRequest struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
	Position int    `json:"position"`
}
