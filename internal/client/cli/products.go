package cli

import (
	"context"
	"fmt"
	"strconv"

	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// RunProducts обрабатывает подкоманды каталога
func (c *Cli) RunProducts(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		return c.productsList(ctx)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: products get <product-id>")
		}
		return c.productsGet(ctx, args[1])
	case "add":
		return c.productsAdd(ctx)
	case "update":
		if len(args) < 2 {
			return fmt.Errorf("usage: products update <product-id>")
		}
		return c.productsUpdate(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: products delete <product-id>")
		}
		return c.productsDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown products subcommand: %s", sub)
	}
}

// productsList перечитывает и печатает каталог
func (c *Cli) productsList(ctx context.Context) error {
	if err := c.refresher.RefreshProducts(ctx); err != nil {
		return err
	}

	products := c.store.Products()
	if len(products) == 0 {
		c.io.Println("Catalog is empty")
		return nil
	}

	for i := range products {
		p := &products[i]
		c.io.Printf("%s  %-30s %10.2f  stock:%d  rating:%.1f (%d)\n",
			p.ID, p.Name, p.Price, p.Stock, p.Rating, p.ReviewCount)
	}
	return nil
}

// productsGet печатает карточку товара
func (c *Cli) productsGet(ctx context.Context, productID string) error {
	p, err := c.apiClient.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	c.io.Printf("ID:          %s\n", p.ID)
	c.io.Printf("Name:        %s\n", p.Name)
	c.io.Printf("Category:    %s\n", p.Category)
	c.io.Printf("Brand:       %s\n", p.Brand)
	c.io.Printf("Price:       %.2f\n", p.Price)
	if p.OriginalPrice > p.Price {
		c.io.Printf("Orig. price: %.2f\n", p.OriginalPrice)
	}
	c.io.Printf("Stock:       %d\n", p.Stock)
	c.io.Printf("Rating:      %.1f (%d reviews)\n", p.Rating, p.ReviewCount)
	if p.Label != "" {
		c.io.Printf("Label:       %s\n", p.Label)
	}
	if p.Description != "" {
		c.io.Printf("Description: %s\n", p.Description)
	}
	for _, img := range p.Images {
		c.io.Printf("Image:       %s\n", img)
	}
	return nil
}

// productsAdd создает товар и рассылает сигнал каталога
func (c *Cli) productsAdd(ctx context.Context) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	req := pkgapi.CreateProductRequest{}
	var err error

	if req.Name, err = c.io.ReadInput("Name: "); err != nil {
		return err
	}
	if req.Category, err = c.io.ReadInput("Category: "); err != nil {
		return err
	}
	if req.Brand, err = c.io.ReadInput("Brand: "); err != nil {
		return err
	}
	if req.Description, err = c.io.ReadInput("Description: "); err != nil {
		return err
	}

	priceStr, err := c.io.ReadInput("Price: ")
	if err != nil {
		return err
	}
	if req.Price, err = strconv.ParseFloat(priceStr, 64); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}

	stockStr, err := c.io.ReadInput("Stock: ")
	if err != nil {
		return err
	}
	if req.Stock, err = strconv.Atoi(stockStr); err != nil {
		return fmt.Errorf("invalid stock: %w", err)
	}

	product, err := c.apiClient.CreateProduct(ctx, req)
	if err != nil {
		return err
	}

	c.io.Printf("Product created: %s\n", product.ID)
	c.broadcast(pkgapi.SyncProductsUpdated)
	return nil
}

// productsUpdate частично обновляет товар
func (c *Cli) productsUpdate(ctx context.Context, productID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	c.io.Println("Leave a field empty to keep its current value.")

	req := pkgapi.UpdateProductRequest{}

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}

	priceStr, err := c.io.ReadInput("Price: ")
	if err != nil {
		return err
	}
	if priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		req.Price = &price
	}

	stockStr, err := c.io.ReadInput("Stock: ")
	if err != nil {
		return err
	}
	if stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			return fmt.Errorf("invalid stock: %w", err)
		}
		req.Stock = &stock
	}

	product, err := c.apiClient.UpdateProduct(ctx, productID, req)
	if err != nil {
		return err
	}

	c.io.Printf("Product updated: %s\n", product.ID)
	c.broadcast(pkgapi.SyncProductsUpdated)
	return nil
}

// productsDelete удаляет товар
func (c *Cli) productsDelete(ctx context.Context, productID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	if err := c.apiClient.DeleteProduct(ctx, productID); err != nil {
		return err
	}

	c.io.Println("Product deleted")
	c.broadcast(pkgapi.SyncProductsUpdated)
	return nil
}
