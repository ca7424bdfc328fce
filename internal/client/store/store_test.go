package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarnajeswanth/MRBikeModzGod-sub000/internal/client/storage"
	"github.com/swarnajeswanth/MRBikeModzGod-sub000/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStateStorage is an in-memory StateStorage for tests
type memStateStorage struct {
	mu   sync.Mutex
	data []byte
}

func (m *memStateStorage) SaveState(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memStateStorage) GetState(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, storage.ErrStateNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memStateStorage) DeleteState(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func newTestStore(t *testing.T) (*Store, *memStateStorage) {
	t.Helper()
	state := &memStateStorage{}
	s, err := New(context.Background(), testLogger(), state)
	require.NoError(t, err)
	return s, state
}

func TestFence(t *testing.T) {
	t.Run("sequential commits succeed", func(t *testing.T) {
		var f fence
		seq1 := f.begin()
		seq2 := f.begin()

		assert.True(t, f.commit(seq1))
		assert.True(t, f.commit(seq2))
	})

	t.Run("late response of older request is discarded", func(t *testing.T) {
		var f fence
		seq1 := f.begin()
		seq2 := f.begin()

		// Ответ на более новый запрос пришел первым
		assert.True(t, f.commit(seq2))
		assert.False(t, f.commit(seq1))
	})

	t.Run("double commit is discarded", func(t *testing.T) {
		var f fence
		seq := f.begin()

		assert.True(t, f.commit(seq))
		assert.False(t, f.commit(seq))
	})
}

func TestStore_ProductsFencing(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	seq1 := s.BeginProductsFetch()
	seq2 := s.BeginProductsFetch()

	fresh := []api.Product{{ID: "p2", Name: "Fresh"}}
	stale := []api.Product{{ID: "p1", Name: "Stale"}}

	require.True(t, s.CommitProducts(ctx, seq2, fresh))
	// Поздний ответ первого запроса не должен затереть более новые данные
	assert.False(t, s.CommitProducts(ctx, seq1, stale))

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh", products[0].Name)
}

func TestStore_ConcurrentCommitsKeepNewest(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	const n = 64
	seqs := make([]uint64, n)
	for i := range seqs {
		seqs[i] = s.BeginProductsFetch()
	}

	// Коммитим ответы всех запросов одновременно. Победить должен ответ
	// самого нового запроса: его commit всегда true, и после него ни один
	// устаревший ответ не имеет права записаться.
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.CommitProducts(ctx, seqs[i], []api.Product{{ID: fmt.Sprintf("p%d", i)}})
		}(i)
	}
	wg.Wait()

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, fmt.Sprintf("p%d", n-1), products[0].ID)
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	state := &memStateStorage{}

	s1, err := New(ctx, testLogger(), state)
	require.NoError(t, err)

	s1.SetUser(ctx, &api.UserInfo{ID: "u1", Email: "user@example.com", Role: "customer"})
	seq := s1.BeginProductsFetch()
	require.True(t, s1.CommitProducts(ctx, seq, []api.Product{{ID: "p1", Name: "Exhaust"}}))

	// Новый инстанс поверх того же хранилища
	s2, err := New(ctx, testLogger(), state)
	require.NoError(t, err)

	require.NotNil(t, s2.User())
	assert.Equal(t, "u1", s2.User().ID)
	require.Len(t, s2.Products(), 1)
	assert.Equal(t, "Exhaust", s2.Products()[0].Name)
}

func TestStore_ReviewsNotPersisted(t *testing.T) {
	ctx := context.Background()
	state := &memStateStorage{}

	s1, err := New(ctx, testLogger(), state)
	require.NoError(t, err)

	seq := s1.BeginReviewsFetch()
	require.True(t, s1.CommitReviews(seq, []api.Review{{ID: "r1", Rating: 5}}))
	// Персист срабатывает на другой мутации
	s1.SetUser(ctx, &api.UserInfo{ID: "u1"})

	s2, err := New(ctx, testLogger(), state)
	require.NoError(t, err)

	assert.Empty(t, s2.Reviews())
	assert.NotNil(t, s2.User())
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.SetUser(ctx, &api.UserInfo{ID: "u1"})
	seq := s.BeginProductsFetch()
	require.True(t, s.CommitProducts(ctx, seq, []api.Product{{ID: "p1"}}))
	s.SetWishlist([]api.WishlistItem{{ID: "i1"}})

	s.Reset(ctx)

	assert.Nil(t, s.User())
	assert.Empty(t, s.Products())
	assert.Empty(t, s.Wishlist())
	require.NotNil(t, s.Settings())
	assert.Equal(t, "MR BikeModz", s.Settings().Store.Name)
}

func TestStore_CommitSettings(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	updated := api.DefaultStoreSettings()
	updated.Store.Name = "Renamed Shop"

	seq := s.BeginSettingsFetch()
	require.True(t, s.CommitSettings(ctx, seq, &updated))

	assert.Equal(t, "Renamed Shop", s.Settings().Store.Name)
}
