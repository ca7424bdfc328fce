package cli

import (
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/iocli"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/store"
)

// IONotifier печатает транзиентные уведомления в терминал
type IONotifier struct {
	io iocli.IO
}

// NewIONotifier создает IONotifier
func NewIONotifier(io iocli.IO) *IONotifier {
	return &IONotifier{io: io}
}

// Notify shows a transient notification
func (n *IONotifier) Notify(message string) {
	n.io.Printf("* %s\n", message)
}

// StorefrontReloader перерисовывает витрину при force reload.
// В браузере это была бы перезагрузка страницы; в терминале
// перерисовываем сводку каталога из стора.
type StorefrontReloader struct {
	io    iocli.IO
	store *store.Store
}

// NewStorefrontReloader создает StorefrontReloader
func NewStorefrontReloader(io iocli.IO, st *store.Store) *StorefrontReloader {
	return &StorefrontReloader{io: io, store: st}
}

// Reload forces a full re-render of the storefront view
func (r *StorefrontReloader) Reload() {
	settings := r.store.Settings()
	products := r.store.Products()

	r.io.Println("")
	r.io.Printf("=== %s ===\n", settings.Store.Name)
	r.io.Printf("%d products in catalog\n", len(products))
}

// StaticRouter сообщает тип маршрута инстанса.
// Для консольного клиента маршрут фиксируется на все время жизни
// процесса: команды дашборда работают в режиме Dashboard.
type StaticRouter struct {
	Dashboard bool
}

// OnDashboard возвращает true для админского режима
func (r StaticRouter) OnDashboard() bool {
	return r.Dashboard
}
