package api

// SyncMessageType определяет тип уведомления об изменении данных.
// Закрытый набор, механизма расширения нет.
type SyncMessageType string

const (
	// SyncProductsUpdated сигнализирует об изменении каталога товаров
	SyncProductsUpdated SyncMessageType = "PRODUCTS_UPDATED"
	// SyncReviewsUpdated сигнализирует об изменении отзывов
	SyncReviewsUpdated SyncMessageType = "REVIEWS_UPDATED"
	// SyncStoreSettingsUpdated сигнализирует об изменении настроек магазина
	SyncStoreSettingsUpdated SyncMessageType = "STORE_SETTINGS_UPDATED"
	// SyncAllDataUpdated сигнализирует о полном обновлении данных
	SyncAllDataUpdated SyncMessageType = "ALL_DATA_UPDATED"
)

// Valid проверяет, что тип входит в известный набор
func (t SyncMessageType) Valid() bool {
	switch t {
	case SyncProductsUpdated, SyncReviewsUpdated, SyncStoreSettingsUpdated, SyncAllDataUpdated:
		return true
	}
	return false
}

// SyncMessage представляет уведомление "что-то изменилось",
// рассылаемое всем подключенным инстансам витрины через общий канал.
// Без гарантий порядка и доставки: при гонке двух обновлений побеждает
// последнее обработанное, при недоступности канала сообщение теряется.
type SyncMessage struct {
	Type       SyncMessageType `json:"type"`
	Source     string          `json:"source"`      // свободная метка отправителя, не уникальна между реконнектами
	InstanceID string          `json:"instanceId"`  // идентификатор инстанса на время жизни вкладки
	Timestamp  int64           `json:"timestamp"`   // wall-clock миллисекунды на стороне отправителя
}

// SyncRegister представляет первый кадр инстанса при подключении к хабу
type SyncRegister struct {
	InstanceID string `json:"instanceId"`
}
