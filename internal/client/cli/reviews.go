package cli

import (
	"context"
	"fmt"
	"strconv"

	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// RunReviews обрабатывает подкоманды отзывов
func (c *Cli) RunReviews(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		productID := ""
		if len(args) > 1 {
			productID = args[1]
		}
		return c.reviewsList(ctx, productID)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: reviews add <product-id>")
		}
		return c.reviewsAdd(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: reviews delete <review-id>")
		}
		return c.reviewsDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown reviews subcommand: %s", sub)
	}
}

// reviewsList печатает отзывы, опционально по одному товару
func (c *Cli) reviewsList(ctx context.Context, productID string) error {
	reviews, err := c.apiClient.ListReviews(ctx, productID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		c.io.Println("No reviews yet")
		return nil
	}

	for i := range reviews {
		r := &reviews[i]
		c.io.Printf("%s  [%d/5] %s — %s\n", r.ID, r.Rating, r.UserName, r.Comment)
	}
	return nil
}

// reviewsAdd создает отзыв и рассылает сигнал
func (c *Cli) reviewsAdd(ctx context.Context, productID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	ratingStr, err := c.io.ReadInput("Rating (1-5): ")
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(ratingStr)
	if err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return err
	}
	comment, err := c.io.ReadInput("Comment: ")
	if err != nil {
		return err
	}

	review, err := c.apiClient.CreateReview(ctx, pkgapi.CreateReviewRequest{
		ProductID: productID,
		Rating:    rating,
		Title:     title,
		Comment:   comment,
	})
	if err != nil {
		return err
	}

	c.io.Printf("Review created: %s\n", review.ID)
	c.broadcast(pkgapi.SyncReviewsUpdated)
	return nil
}

// reviewsDelete удаляет отзыв
func (c *Cli) reviewsDelete(ctx context.Context, reviewID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	if err := c.apiClient.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	c.io.Println("Review deleted")
	c.broadcast(pkgapi.SyncReviewsUpdated)
	return nil
}
