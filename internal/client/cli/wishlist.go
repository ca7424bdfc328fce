package cli

import (
	"context"
	"fmt"
	"strconv"

	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// RunWishlist обрабатывает подкоманды wishlist
func (c *Cli) RunWishlist(ctx context.Context, args []string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		return c.wishlistList(ctx)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: wishlist add <product-id> [quantity]")
		}
		quantity := 1
		if len(args) > 2 {
			q, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity: %w", err)
			}
			quantity = q
		}
		return c.wishlistAdd(ctx, args[1], quantity)
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: wishlist remove <item-id>")
		}
		return c.wishlistRemove(ctx, args[1])
	case "clear":
		return c.wishlistClear(ctx)
	default:
		return fmt.Errorf("unknown wishlist subcommand: %s", sub)
	}
}

// wishlistList печатает wishlist текущего пользователя
func (c *Cli) wishlistList(ctx context.Context) error {
	items, err := c.apiClient.ListWishlist(ctx)
	if err != nil {
		return err
	}
	c.store.SetWishlist(items)

	if len(items) == 0 {
		c.io.Println("Your wishlist is empty")
		return nil
	}

	for i := range items {
		item := &items[i]
		c.io.Printf("%s  product:%s  qty:%d\n", item.ID, item.ProductID, item.Quantity)
	}
	return nil
}

// wishlistAdd добавляет товар в wishlist
func (c *Cli) wishlistAdd(ctx context.Context, productID string, quantity int) error {
	items, err := c.apiClient.AddWishlistItem(ctx, pkgapi.AddWishlistItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		return err
	}
	c.store.SetWishlist(items)

	c.io.Println("Added to wishlist")
	return nil
}

// wishlistRemove удаляет позицию из wishlist
func (c *Cli) wishlistRemove(ctx context.Context, itemID string) error {
	if err := c.apiClient.RemoveWishlistItem(ctx, itemID); err != nil {
		return err
	}

	c.io.Println("Removed from wishlist")
	return nil
}

// wishlistClear удаляет все позиции wishlist
func (c *Cli) wishlistClear(ctx context.Context) error {
	if err := c.apiClient.ClearWishlist(ctx); err != nil {
		return err
	}
	c.store.SetWishlist(nil)

	c.io.Println("Wishlist cleared")
	return nil
}
