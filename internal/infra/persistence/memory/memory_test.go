package memory

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/realtime"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func next[T any](t *testing.T, sub realtime.Subscription[T]) realtime.Snapshot[T] {
	t.Helper()

	select {
	case snap, ok := <-sub.Snapshots():
		require.True(t, ok, "subscription closed")

		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")

		return realtime.Snapshot[T]{}
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(now)
	repo := NewProductRepository(clock)

	id, err := repo.Create(ctx, &entity.Product{Name: "Camiseta", UserID: "owner-1", Status: entity.ProductStatusActive})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	assert.Empty(t, got.Categories)

	// The returned copy is detached from the store
	got.Name = "changed"
	again, _ := repo.FindByID(ctx, id)
	assert.Equal(t, "Camiseta", again.Name)

	clock.Advance(time.Minute)
	stock := 4
	require.NoError(t, repo.Update(ctx, id, entity.ProductPatch{Stock: &stock}))

	updated, _ := repo.FindByID(ctx, id)
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, "Camiseta", updated.Name)
	assert.Equal(t, now.Add(time.Minute), updated.UpdatedAt)
	assert.Equal(t, now, updated.CreatedAt)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, id, entity.ProductPatch{Stock: &stock}), repository.ErrProductNotFound)
}

func TestProductRepository_WatchScopesByOwnerAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(clockwork.NewFakeClockAt(now))

	sub, err := repo.Watch(ctx, repository.ProductQuery{OwnerID: "owner-1", Status: entity.ProductStatusActive})
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, next(t, sub).Items)

	_, err = repo.Create(ctx, &entity.Product{Name: "A", UserID: "owner-1", Status: entity.ProductStatusActive})
	require.NoError(t, err)
	snap := next(t, sub)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "A", snap.Items[0].Name)

	_, err = repo.Create(ctx, &entity.Product{Name: "B", UserID: "owner-1", Status: entity.ProductStatusInactive})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &entity.Product{Name: "C", UserID: "owner-2", Status: entity.ProductStatusActive})
	require.NoError(t, err)

	snap = next(t, sub)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "A", snap.Items[0].Name)
}

func TestProductRepository_CancelReleasesWatcher(t *testing.T) {
	repo := NewProductRepository(clockwork.NewFakeClockAt(now))

	sub, err := repo.Watch(context.Background(), repository.ProductQuery{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Watchers())

	sub.Cancel()

	assert.Eventually(t, func() bool { return repo.Watchers() == 0 }, time.Second, 5*time.Millisecond)
	for range sub.Snapshots() {
		// drain until closed
	}
}

func TestProductRepository_WatchRequiresOwner(t *testing.T) {
	repo := NewProductRepository(clockwork.NewFakeClockAt(now))

	_, err := repo.Watch(context.Background(), repository.ProductQuery{})
	assert.Error(t, err)
}

func TestCategoryRepository_ListAndWatch(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(clockwork.NewFakeClockAt(now))

	sub, err := repo.Watch(ctx, "owner-1")
	require.NoError(t, err)
	defer sub.Cancel()
	next(t, sub)

	id, err := repo.Create(ctx, &entity.Category{Name: "Roupas", UserID: "owner-1"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &entity.Category{Name: "Livros", UserID: "owner-2"})
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	color := "#000000"
	require.NoError(t, repo.Update(ctx, id, entity.CategoryPatch{Color: &color}))

	snap := next(t, sub)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "#000000", snap.Items[0].Color)
	assert.Equal(t, "Roupas", snap.Items[0].Name)

	require.NoError(t, repo.Delete(ctx, id))
	assert.Empty(t, next(t, sub).Items)
}

func TestStoreSettingsRepository_WatchDeliversEmptyThenDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreSettingsRepository(clockwork.NewFakeClockAt(now))

	sub, err := repo.Watch(ctx, "owner-1")
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Empty(t, next(t, sub).Items)

	require.NoError(t, repo.Create(ctx, &entity.StoreSettings{UserID: "owner-1", Name: "Loja"}))

	snap := next(t, sub)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "owner-1", snap.Items[0].ID)
	assert.Equal(t, now, snap.Items[0].CreatedAt)

	assert.ErrorIs(t, repo.Create(ctx, &entity.StoreSettings{UserID: "owner-1"}), repository.ErrStoreSettingsExist)

	phone := "11999999999"
	require.NoError(t, repo.Update(ctx, "owner-1", entity.StoreSettingsPatch{Phone: &phone}))
	got, err := repo.FindByOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Loja", got.Name)
	assert.Equal(t, phone, got.Phone)

	_, err = repo.FindByOwner(ctx, "owner-2")
	assert.ErrorIs(t, err, repository.ErrStoreSettingsNotFound)
	assert.ErrorIs(t, repo.Update(ctx, "owner-2", entity.StoreSettingsPatch{Phone: &phone}), repository.ErrStoreSettingsNotFound)
}
