package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/server/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// CreateProduct creates a new product
func (s *Storage) CreateProduct(ctx context.Context, product *api.Product) error {
	images, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		INSERT INTO products (id, name, category, brand, description, label, images,
			price, original_price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Category,
		product.Brand,
		product.Description,
		product.Label,
		string(images),
		product.Price,
		product.OriginalPrice,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		// Проверяем на duplicate name
		if strings.Contains(err.Error(), "UNIQUE constraint failed: products.name") {
			return storage.ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// GetProduct retrieves product by ID
func (s *Storage) GetProduct(ctx context.Context, productID string) (*api.Product, error) {
	query := selectProduct + ` WHERE p.id = ? GROUP BY p.id`

	row := s.db.QueryRowContext(ctx, query, productID)
	product, err := scanProduct(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts returns all products ordered by creation time
func (s *Storage) ListProducts(ctx context.Context) ([]api.Product, error) {
	query := selectProduct + ` GROUP BY p.id ORDER BY p.created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]api.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

// UpdateProduct updates an existing product
func (s *Storage) UpdateProduct(ctx context.Context, product *api.Product) error {
	images, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to marshal images: %w", err)
	}

	query := `
		UPDATE products
		SET name = ?, category = ?, brand = ?, description = ?, label = ?,
			images = ?, price = ?, original_price = ?, stock = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		product.Name,
		product.Category,
		product.Brand,
		product.Description,
		product.Label,
		string(images),
		product.Price,
		product.OriginalPrice,
		product.Stock,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: products.name") {
			return storage.ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a product
func (s *Storage) DeleteProduct(ctx context.Context, productID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

// selectProduct выбирает товар вместе с агрегированным рейтингом по отзывам
const selectProduct = `
	SELECT p.id, p.name, p.category, p.brand, p.description, p.label, p.images,
		p.price, p.original_price, p.stock, p.created_at, p.updated_at,
		COALESCE(AVG(r.rating), 0), COUNT(r.id)
	FROM products p
	LEFT JOIN reviews r ON r.product_id = p.id
`

// scanProduct читает одну строку products.
// Работает и с sql.Row, и с sql.Rows через общую сигнатуру Scan.
func scanProduct(scan func(dest ...any) error) (*api.Product, error) {
	product := &api.Product{}
	var images string

	err := scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Brand,
		&product.Description,
		&product.Label,
		&images,
		&product.Price,
		&product.OriginalPrice,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Rating,
		&product.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &product.Images); err != nil {
		return nil, fmt.Errorf("failed to unmarshal images: %w", err)
	}

	return product, nil
}
