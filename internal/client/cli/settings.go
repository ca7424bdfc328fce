package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// RunSettings обрабатывает подкоманды настроек магазина
func (c *Cli) RunSettings(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "show":
		return c.settingsShow(ctx)
	case "edit":
		return c.settingsEdit(ctx)
	default:
		return fmt.Errorf("unknown settings subcommand: %s", sub)
	}
}

// settingsShow перечитывает и печатает настройки
func (c *Cli) settingsShow(ctx context.Context) error {
	if err := c.refresher.RefreshSettings(ctx); err != nil {
		return err
	}

	s := c.store.Settings()
	c.io.Printf("Store:    %s (%s)\n", s.Store.Name, s.Store.Currency)
	if s.Store.Tagline != "" {
		c.io.Printf("Tagline:  %s\n", s.Store.Tagline)
	}
	c.io.Printf("Reviews enabled:   %v\n", s.Features.EnableReviews)
	c.io.Printf("Wishlist enabled:  %v\n", s.Features.EnableWishlist)
	c.io.Printf("OTP login enabled: %v\n", s.Features.EnableOTPLogin)
	c.io.Printf("Show slider:       %v\n", s.CustomerExperience.ShowSlider)
	c.io.Printf("Show labels:       %v\n", s.CustomerExperience.ShowLabels)
	c.io.Printf("Show out of stock: %v\n", s.CustomerExperience.ShowOutOfStock)
	return nil
}

// settingsEdit меняет основные реквизиты магазина (только ритейлер)
func (c *Cli) settingsEdit(ctx context.Context) error {
	if err := c.requireSession(ctx); err != nil {
		return err
	}

	// Редактируем поверх текущих настроек
	if err := c.refresher.RefreshSettings(ctx); err != nil {
		return err
	}
	current := c.store.Settings()
	settings := *current

	c.io.Println("Leave a field empty to keep its current value.")

	name, err := c.io.ReadInput(fmt.Sprintf("Store name [%s]: ", settings.Store.Name))
	if err != nil {
		return err
	}
	if name != "" {
		settings.Store.Name = name
	}

	tagline, err := c.io.ReadInput(fmt.Sprintf("Tagline [%s]: ", settings.Store.Tagline))
	if err != nil {
		return err
	}
	if tagline != "" {
		settings.Store.Tagline = tagline
	}

	currency, err := c.io.ReadInput(fmt.Sprintf("Currency [%s]: ", settings.Store.Currency))
	if err != nil {
		return err
	}
	if currency != "" {
		settings.Store.Currency = currency
	}

	updated, err := c.apiClient.UpdateSettings(ctx, settings)
	if err != nil {
		return err
	}

	seq := c.store.BeginSettingsFetch()
	c.store.CommitSettings(ctx, seq, updated)

	c.io.Println("Store settings updated")
	c.broadcast(pkgapi.SyncStoreSettingsUpdated)
	return nil
}
