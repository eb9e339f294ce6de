package service

import (
	"testing"

	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/app/repository"
	"github.com/mkim/storehub-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogServices(t *testing.T) (ItemService, TagService, StoreService, *gorm.DB) {
	t.Helper()

	conn, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(conn) })

	storeRepo := repository.NewStoreRepository(conn)
	itemRepo := repository.NewItemRepository(conn)
	tagRepo := repository.NewTagRepository(conn)

	return NewItemService(itemRepo, storeRepo, tagRepo),
		NewTagService(tagRepo, storeRepo),
		NewStoreService(storeRepo),
		conn
}

func mustCreateStore(t *testing.T, svc StoreService, name string) *model.Store {
	t.Helper()
	store, err := svc.CreateStore(name)
	require.NoError(t, err)
	return store
}

func TestItemService_CreateItem(t *testing.T) {
	items, _, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "Oak, four legs", 49.99, store.ID)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Chair", item.Name)
	assert.Equal(t, 49.99, item.Price)
	assert.Equal(t, store.ID, item.StoreID)
	require.NotNil(t, item.Store)
	assert.Equal(t, "Corner Shop", item.Store.Name)
}

func TestItemService_CreateItem_MissingStore(t *testing.T) {
	items, _, _, _ := setupCatalogServices(t)

	_, err := items.CreateItem("Chair", "", 49.99, 999)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestItemService_GetItem_NotFound(t *testing.T) {
	items, _, _, _ := setupCatalogServices(t)

	_, err := items.GetItem(12345)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemService_UpsertItem_UpdatesExisting(t *testing.T) {
	items, _, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "Oak", 49.99, store.ID)
	require.NoError(t, err)

	updated, created, err := items.UpsertItem(item.ID, "Armchair", "", 59.99, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, "Armchair", updated.Name)
	assert.Equal(t, 59.99, updated.Price)
	// Empty description leaves the stored one alone
	assert.Equal(t, "Oak", updated.Description)
	assert.Equal(t, store.ID, updated.StoreID)
}

func TestItemService_UpsertItem_CreatesUnderGivenID(t *testing.T) {
	items, _, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, created, err := items.UpsertItem(77, "Lamp", "Brass", 19.99, store.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(77), item.ID)
	assert.Equal(t, "Lamp", item.Name)

	fetched, err := items.GetItem(77)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", fetched.Name)
}

func TestItemService_UpsertItem_CreateWithoutStore(t *testing.T) {
	items, _, _, _ := setupCatalogServices(t)

	_, _, err := items.UpsertItem(77, "Lamp", "", 19.99, 0)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestItemService_DeleteItem(t *testing.T) {
	items, _, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "", 49.99, store.ID)
	require.NoError(t, err)

	require.NoError(t, items.DeleteItem(item.ID))

	_, err = items.GetItem(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = items.DeleteItem(item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemService_LinkAndUnlinkTag(t *testing.T) {
	items, tags, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "", 49.99, store.ID)
	require.NoError(t, err)
	tag, err := tags.CreateTag(store.ID, "furniture")
	require.NoError(t, err)

	linked, err := items.LinkTag(item.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, linked.ID)

	fetched, err := items.GetItem(item.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "furniture", fetched.Tags[0].Name)

	require.NoError(t, items.UnlinkTag(item.ID, tag.ID))

	fetched, err = items.GetItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Tags)
}

func TestItemService_UnlinkTag_NotLinked(t *testing.T) {
	items, tags, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "", 49.99, store.ID)
	require.NoError(t, err)
	tag, err := tags.CreateTag(store.ID, "furniture")
	require.NoError(t, err)

	err = items.UnlinkTag(item.ID, tag.ID)
	assert.ErrorIs(t, err, ErrTagNotLinked)
}

func TestItemService_LinkTag_MissingEnds(t *testing.T) {
	items, tags, stores, _ := setupCatalogServices(t)
	store := mustCreateStore(t, stores, "Corner Shop")

	item, err := items.CreateItem("Chair", "", 49.99, store.ID)
	require.NoError(t, err)
	tag, err := tags.CreateTag(store.ID, "furniture")
	require.NoError(t, err)

	_, err = items.LinkTag(999, tag.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = items.LinkTag(item.ID, 999)
	assert.ErrorIs(t, err, ErrTagNotFound)
}
