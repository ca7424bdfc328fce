package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/models"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/validation"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// ProductHandler обрабатывает CRUD запросы каталога товаров
type ProductHandler struct {
	logger  *slog.Logger
	storage storage.ProductStorage
}

// NewProductHandler создает новый handler для каталога
func NewProductHandler(logger *slog.Logger, storage storage.ProductStorage) *ProductHandler {
	return &ProductHandler{
		logger:  logger,
		storage: storage,
	}
}

// List обрабатывает GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.storage.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ProductsResponse{
		Success:  true,
		Products: products,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID := r.PathValue("id")
	if productID == "" {
		sendError(h.logger, w, "product id is required", http.StatusBadRequest)
		return
	}

	product, err := h.storage.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.ProductResponse{
		Success: true,
		Product: product,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/products
// Мутации каталога доступны только ритейлеру.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can manage the catalog", http.StatusForbidden)
		return
	}

	var req api.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create product request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validateProductFields(req.Name, req.Price, req.Stock); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	product := &api.Product{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Category:      req.Category,
		Brand:         req.Brand,
		Description:   req.Description,
		Label:         req.Label,
		Images:        req.Images,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.storage.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, storage.ErrProductAlreadyExists) {
			h.logger.WarnContext(ctx, "product already exists", slog.String("name", req.Name))
			sendError(h.logger, w, "A product with this name already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name))

	resp := api.ProductResponse{
		Success: true,
		Product: product,
		Message: "Product created successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Update обрабатывает PUT /api/products/{id}
// Частичное обновление: nil-поля запроса не изменяются
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can manage the catalog", http.StatusForbidden)
		return
	}

	productID := r.PathValue("id")
	if productID == "" {
		sendError(h.logger, w, "product id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update product request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.storage.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	applyProductUpdate(product, &req)

	if err := validateProductFields(product.Name, product.Price, product.Stock); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	product.UpdatedAt = time.Now()

	if err := h.storage.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, storage.ErrProductAlreadyExists) {
			sendError(h.logger, w, "A product with this name already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product updated", slog.String("product_id", productID))

	resp := api.ProductResponse{
		Success: true,
		Product: product,
		Message: "Product updated successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, ok := GetRole(ctx)
	if !ok || role != models.RoleRetailer {
		sendError(h.logger, w, "Only the retailer can manage the catalog", http.StatusForbidden)
		return
	}

	productID := r.PathValue("id")
	if productID == "" {
		sendError(h.logger, w, "product id is required", http.StatusBadRequest)
		return
	}

	if err := h.storage.DeleteProduct(ctx, productID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			sendError(h.logger, w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete product", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "product deleted", slog.String("product_id", productID))

	resp := api.StatusResponse{
		Success: true,
		Message: "Product deleted successfully",
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// validateProductFields проверяет общие поля товара
func validateProductFields(name string, price float64, stock int) error {
	if err := validation.ValidateProductName(name); err != nil {
		return err
	}
	if err := validation.ValidatePrice(price); err != nil {
		return err
	}
	return validation.ValidateStock(stock)
}

// applyProductUpdate накладывает непустые поля запроса на товар
func applyProductUpdate(product *api.Product, req *api.UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Label != nil {
		product.Label = *req.Label
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		product.OriginalPrice = *req.OriginalPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
}
