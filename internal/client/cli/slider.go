package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// RunSlider обрабатывает подкоманды баннеров главной страницы
func (c *Cli) RunSlider(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		return c.sliderList(ctx)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: slider add <image-file>")
		}
		return c.sliderAdd(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: slider delete <image-id>")
		}
		return c.sliderDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown slider subcommand: %s", sub)
	}
}

// sliderList печатает баннеры
func (c *Cli) sliderList(ctx context.Context) error {
	images, err := c.apiClient.ListSlider(ctx)
	if err != nil {
		return err
	}

	if len(images) == 0 {
		c.io.Println("No slider images")
		return nil
	}

	for i := range images {
		img := &images[i]
		c.io.Printf("%s  pos:%d  %s  %s\n", img.ID, img.Position, img.Title, img.ImageURL)
	}
	return nil
}

// sliderAdd загружает баннер на сторонний хостинг через сервер
func (c *Cli) sliderAdd(ctx context.Context, path string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return err
	}

	images, err := c.apiClient.CreateSliderImage(ctx, pkgapi.CreateSliderImageRequest{
		Title:    title,
		Filename: filepath.Base(path),
		Data:     data,
	})
	if err != nil {
		return err
	}

	c.io.Printf("Slider image uploaded, %d images total\n", len(images))
	return nil
}

// sliderDelete удаляет баннер
func (c *Cli) sliderDelete(ctx context.Context, imageID string) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	if err := c.apiClient.DeleteSliderImage(ctx, imageID); err != nil {
		return err
	}

	c.io.Println("Slider image deleted")
	return nil
}
