package cli

import (
	"context"
)

// RunWatch следит за живыми обновлениями каталога.
// Канал синхронизации уже запущен; команда делает первичный re-fetch
// всех коллекций и блокируется до прерывания.
func (c *Cli) RunWatch(ctx context.Context) error {
	if err := c.refresher.RefreshProducts(ctx); err != nil {
		return err
	}
	if err := c.refresher.RefreshReviews(ctx); err != nil {
		return err
	}
	if err := c.refresher.RefreshSettings(ctx); err != nil {
		return err
	}

	settings := c.store.Settings()
	c.io.Printf("=== %s ===\n", settings.Store.Name)
	c.io.Printf("%d products, %d reviews\n", len(c.store.Products()), len(c.store.Reviews()))
	c.io.Println("Watching for updates, press Ctrl+C to stop...")

	<-ctx.Done()
	return nil
}
