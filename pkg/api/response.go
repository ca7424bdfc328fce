package api

// Все ответы API заворачиваются в единый конверт
// {"success": bool, "message": ..., "data"/"product"/"products": ...}.
// Коды статусов следуют REST семантике: 400 валидация, 401 авторизация,
// 404 не найдено, 409 конфликт, 500 внутренняя ошибка.

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// StatusResponse представляет ответ без данных (удаление и т.п.)
type StatusResponse struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// ProductResponse представляет ответ с одним товаром
type ProductResponse struct {
	Product *Product `json:"product"`
	Message string   `json:"message,omitempty"`
	Success bool     `json:"success"`
}

// ProductsResponse представляет ответ со списком товаров
type ProductsResponse struct {
	Products []Product `json:"products"`
	Success  bool      `json:"success"`
}

// ReviewResponse представляет ответ с одним отзывом
type ReviewResponse struct {
	Data    *Review `json:"data"`
	Message string  `json:"message,omitempty"`
	Success bool    `json:"success"`
}

// ReviewsResponse представляет ответ со списком отзывов
type ReviewsResponse struct {
	Data    []Review `json:"data"`
	Success bool     `json:"success"`
}

// SettingsResponse представляет ответ с настройками магазина
type SettingsResponse struct {
	Data    *StoreSettings `json:"data"`
	Message string         `json:"message,omitempty"`
	Success bool           `json:"success"`
}

// WishlistResponse представляет ответ со списком wishlist/корзины
type WishlistResponse struct {
	Data    []WishlistItem `json:"data"`
	Message string         `json:"message,omitempty"`
	Success bool           `json:"success"`
}

// SliderResponse представляет ответ со списком баннеров
type SliderResponse struct {
	Data    []SliderImage `json:"data"`
	Message string        `json:"message,omitempty"`
	Success bool          `json:"success"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
