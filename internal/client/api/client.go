// Package api реализует HTTP клиент серверного API магазина
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu          sync.RWMutex
	accessToken string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAccessToken устанавливает bearer токен для последующих запросов
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию по email и паролю
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// SendOTP запрашивает отправку одноразового кода на email
func (c *Client) SendOTP(ctx context.Context, req api.SendOTPRequest) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/send-otp", req, &resp); err != nil {
		return nil, fmt.Errorf("send otp request failed: %w", err)
	}
	return &resp, nil
}

// VerifyOTP проверяет одноразовый код и возвращает токены
func (c *Client) VerifyOTP(ctx context.Context, req api.VerifyOTPRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/verify-otp", req, &resp); err != nil {
		return nil, fmt.Errorf("verify otp request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обменивает refresh токен на новую пару токенов.
// Refresh токен передается как bearer вместо access токена.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequestWithToken(ctx, http.MethodPost, "/api/auth/refresh", refreshToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout инвалидирует refresh токены на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ListProducts возвращает весь каталог
func (c *Client) ListProducts(ctx context.Context) ([]api.Product, error) {
	var resp api.ProductsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/products", nil, &resp); err != nil {
		return nil, fmt.Errorf("list products request failed: %w", err)
	}
	return resp.Products, nil
}

// GetProduct возвращает товар по ID
func (c *Client) GetProduct(ctx context.Context, productID string) (*api.Product, error) {
	var resp api.ProductResponse
	path := "/api/products/" + url.PathEscape(productID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get product request failed: %w", err)
	}
	return resp.Product, nil
}

// CreateProduct создает новый товар
func (c *Client) CreateProduct(ctx context.Context, req api.CreateProductRequest) (*api.Product, error) {
	var resp api.ProductResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/products", req, &resp); err != nil {
		return nil, fmt.Errorf("create product request failed: %w", err)
	}
	return resp.Product, nil
}

// UpdateProduct частично обновляет товар
func (c *Client) UpdateProduct(ctx context.Context, productID string, req api.UpdateProductRequest) (*api.Product, error) {
	var resp api.ProductResponse
	path := "/api/products/" + url.PathEscape(productID)
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, fmt.Errorf("update product request failed: %w", err)
	}
	return resp.Product, nil
}

// DeleteProduct удаляет товар
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	path := "/api/products/" + url.PathEscape(productID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete product request failed: %w", err)
	}
	return nil
}

// ListReviews возвращает отзывы, опционально отфильтрованные по товару
func (c *Client) ListReviews(ctx context.Context, productID string) ([]api.Review, error) {
	var resp api.ReviewsResponse
	path := "/api/reviews"
	if productID != "" {
		path += "?productId=" + url.QueryEscape(productID)
	}
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list reviews request failed: %w", err)
	}
	return resp.Data, nil
}

// CreateReview создает отзыв о товаре
func (c *Client) CreateReview(ctx context.Context, req api.CreateReviewRequest) (*api.Review, error) {
	var resp api.ReviewResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/reviews", req, &resp); err != nil {
		return nil, fmt.Errorf("create review request failed: %w", err)
	}
	return resp.Data, nil
}

// DeleteReview удаляет отзыв
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	path := "/api/reviews/" + url.PathEscape(reviewID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete review request failed: %w", err)
	}
	return nil
}

// GetSettings возвращает настройки магазина
func (c *Client) GetSettings(ctx context.Context) (*api.StoreSettings, error) {
	var resp api.SettingsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/store-settings", nil, &resp); err != nil {
		return nil, fmt.Errorf("get settings request failed: %w", err)
	}
	return resp.Data, nil
}

// UpdateSettings заменяет настройки магазина
func (c *Client) UpdateSettings(ctx context.Context, settings api.StoreSettings) (*api.StoreSettings, error) {
	var resp api.SettingsResponse
	if err := c.doRequest(ctx, http.MethodPut, "/api/store-settings", settings, &resp); err != nil {
		return nil, fmt.Errorf("update settings request failed: %w", err)
	}
	return resp.Data, nil
}

// ListWishlist возвращает wishlist текущего пользователя
func (c *Client) ListWishlist(ctx context.Context) ([]api.WishlistItem, error) {
	var resp api.WishlistResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/user/wishlist", nil, &resp); err != nil {
		return nil, fmt.Errorf("list wishlist request failed: %w", err)
	}
	return resp.Data, nil
}

// AddWishlistItem добавляет товар в wishlist
func (c *Client) AddWishlistItem(ctx context.Context, req api.AddWishlistItemRequest) ([]api.WishlistItem, error) {
	var resp api.WishlistResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/user/wishlist", req, &resp); err != nil {
		return nil, fmt.Errorf("add wishlist item request failed: %w", err)
	}
	return resp.Data, nil
}

// RemoveWishlistItem удаляет позицию из wishlist
func (c *Client) RemoveWishlistItem(ctx context.Context, itemID string) error {
	path := "/api/user/wishlist/" + url.PathEscape(itemID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove wishlist item request failed: %w", err)
	}
	return nil
}

// ClearWishlist удаляет все позиции wishlist текущего пользователя
func (c *Client) ClearWishlist(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/user/wishlist", nil, nil); err != nil {
		return fmt.Errorf("clear wishlist request failed: %w", err)
	}
	return nil
}

// ListSlider возвращает баннеры главной страницы
func (c *Client) ListSlider(ctx context.Context) ([]api.SliderImage, error) {
	var resp api.SliderResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/slider", nil, &resp); err != nil {
		return nil, fmt.Errorf("list slider request failed: %w", err)
	}
	return resp.Data, nil
}

// CreateSliderImage загружает новый баннер
func (c *Client) CreateSliderImage(ctx context.Context, req api.CreateSliderImageRequest) ([]api.SliderImage, error) {
	var resp api.SliderResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/slider", req, &resp); err != nil {
		return nil, fmt.Errorf("create slider image request failed: %w", err)
	}
	return resp.Data, nil
}

// DeleteSliderImage удаляет баннер
func (c *Client) DeleteSliderImage(ctx context.Context, imageID string) error {
	path := "/api/slider/" + url.PathEscape(imageID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete slider image request failed: %w", err)
	}
	return nil
}

// doRequest выполняет HTTP запрос с текущим access токеном
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()
	return c.doRequestWithToken(ctx, method, path, token, body, result)
}

// doRequestWithToken выполняет HTTP запрос с явно заданным bearer токеном
func (c *Client) doRequestWithToken(ctx context.Context, method, path, token string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
