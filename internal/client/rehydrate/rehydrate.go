// Package rehydrate восстанавливает персистентный снапшот состояния
// витрины при старте клиента. Снапшот хранится одним JSON-блобом;
// в него попадают только сессия пользователя, кэш каталога и настройки
// магазина. Отзывы и переходные состояния UI не персистятся.
//
// Политика консервативная: любое несовпадение формы означает полный
// сброс к значениям по умолчанию, без пофилдового ремонта.
package rehydrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

// CurrentVersion текущая версия формы снапшота
const CurrentVersion = 1

// Persist содержит метаданные персистентного снапшота
type Persist struct {
	Version    int  `json:"version"`
	Rehydrated bool `json:"rehydrated"`
}

// Snapshot представляет персистентную часть состояния витрины.
// Ключ "product" (в единственном числе) исторический, менять его
// нельзя без очередной миграции.
type Snapshot struct {
	User          *api.UserInfo      `json:"user"`
	Products      []api.Product      `json:"product"`
	StoreSettings *api.StoreSettings `json:"storeSettings"`
	Persist       Persist            `json:"_persist"`
}

// expectedKeys точный набор верхнеуровневых ключей валидного блоба
var expectedKeys = map[string]struct{}{
	"user":          {},
	"product":       {},
	"storeSettings": {},
	"_persist":      {},
}

// migration преобразует снапшот одной версии в следующую
type migration func(*Snapshot) error

// migrations таблица миграций: версия-источник -> преобразование.
// Применяются последовательно, пока версия не дойдет до CurrentVersion.
// Версии, для которых нет миграции (в том числе будущие), означают
// полный сброс.
var migrations = map[int]migration{
	// v0 -> v1: ранние снапшоты могли не иметь секции настроек,
	// подставляем дефолтную
	0: func(s *Snapshot) error {
		if s.StoreSettings == nil {
			defaults := api.DefaultStoreSettings()
			s.StoreSettings = &defaults
		}
		return nil
	},
}

// DefaultSnapshot возвращает свежие значения по умолчанию для всех секций
func DefaultSnapshot() *Snapshot {
	defaults := api.DefaultStoreSettings()
	return &Snapshot{
		User:          nil,
		Products:      []api.Product{},
		StoreSettings: &defaults,
		Persist: Persist{
			Version:    CurrentVersion,
			Rehydrated: true,
		},
	}
}

// Load читает и мигрирует персистентный снапшот.
// Выполняется один раз при старте, до того как сторы становятся доступны.
func Load(ctx context.Context, logger *slog.Logger, store storage.StateStorage) (*Snapshot, error) {
	data, err := store.GetState(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			// Блоба нет: чистый старт
			return DefaultSnapshot(), nil
		}
		return nil, fmt.Errorf("failed to read persisted state: %w", err)
	}

	snapshot, ok := decode(logger, data)
	if !ok {
		// Форма не распознана: сносим блоб целиком
		if err := store.DeleteState(ctx); err != nil {
			logger.Warn("failed to delete invalid persisted state", "error", err)
		}
		return DefaultSnapshot(), nil
	}

	if !migrate(logger, snapshot) {
		if err := store.DeleteState(ctx); err != nil {
			logger.Warn("failed to delete stale persisted state", "error", err)
		}
		return DefaultSnapshot(), nil
	}

	// Защитная проверка: после миграций секция настроек обязана быть
	if snapshot.StoreSettings == nil {
		defaults := api.DefaultStoreSettings()
		snapshot.StoreSettings = &defaults
	}

	snapshot.Persist.Rehydrated = true
	return snapshot, nil
}

// decode разбирает блоб и проверяет точное совпадение набора
// верхнеуровневых ключей. Лишний или отсутствующий ключ означает,
// что блоб писала другая версия приложения.
func decode(logger *slog.Logger, data []byte) (*Snapshot, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("persisted state is not valid JSON, resetting", "error", err)
		return nil, false
	}

	if len(raw) != len(expectedKeys) {
		logger.Warn("persisted state has unexpected shape, resetting",
			"keys", len(raw))
		return nil, false
	}
	for key := range raw {
		if _, ok := expectedKeys[key]; !ok {
			logger.Warn("persisted state has unknown key, resetting", "key", key)
			return nil, false
		}
	}

	// Секция настроек должна присутствовать и не быть null
	if settings, ok := raw["storeSettings"]; !ok || string(settings) == "null" {
		logger.Warn("persisted state lacks settings section, resetting")
		return nil, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn("failed to decode persisted state, resetting", "error", err)
		return nil, false
	}

	return &snapshot, true
}

// migrate прогоняет снапшот по таблице миграций до текущей версии.
// Возвращает false, если миграционного пути нет.
func migrate(logger *slog.Logger, snapshot *Snapshot) bool {
	for snapshot.Persist.Version < CurrentVersion {
		m, ok := migrations[snapshot.Persist.Version]
		if !ok {
			logger.Warn("no migration path for persisted state",
				"version", snapshot.Persist.Version)
			return false
		}
		if err := m(snapshot); err != nil {
			logger.Warn("persisted state migration failed",
				"version", snapshot.Persist.Version,
				"error", err)
			return false
		}
		snapshot.Persist.Version++
	}

	if snapshot.Persist.Version != CurrentVersion {
		// Будущая версия: этот клиент старее блоба
		logger.Warn("persisted state version is newer than supported",
			"version", snapshot.Persist.Version)
		return false
	}

	return true
}

// Save сериализует снапшот и записывает его в хранилище.
// Вызывается после каждой релевантной мутации состояния.
func Save(ctx context.Context, store storage.StateStorage, snapshot *Snapshot) error {
	snapshot.Persist.Version = CurrentVersion
	snapshot.Persist.Rehydrated = true

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal state snapshot: %w", err)
	}

	if err := store.SaveState(ctx, data); err != nil {
		return fmt.Errorf("failed to persist state snapshot: %w", err)
	}

	return nil
}

// ClearSettings удаляет из персистентного блоба только секцию настроек,
// не трогая остальные. Используется при получении сигнала об изменении
// настроек: устаревший снапшот не должен воскресить старые настройки
// после force reload.
func ClearSettings(ctx context.Context, store storage.StateStorage) error {
	data, err := store.GetState(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrStateNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read persisted state: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Блоб нечитаем, при следующем старте его снесет Load
		return nil
	}

	raw["storeSettings"] = json.RawMessage("null")

	patched, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal patched state: %w", err)
	}

	if err := store.SaveState(ctx, patched); err != nil {
		return fmt.Errorf("failed to persist patched state: %w", err)
	}

	return nil
}
