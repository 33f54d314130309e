package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medizo/models"
	"medizo/store"
)

func seedProducts(t *testing.T, s *ProductStore, products []models.Product) {
	t.Helper()
	for i := range products {
		require.NoError(t, s.Create(context.Background(), &products[i]))
	}
}

func TestProductStoreSearch(t *testing.T) {
	s := NewProductStore()
	seedProducts(t, s, []models.Product{
		{Name: "Aspirin 500mg", Description: "Pain reliever", Category: "Pain Relief", Price: 120},
		{Name: "Paracetamol 650mg", Description: "Fever reducer", Category: "Pain Relief", Price: 45},
		{Name: "Vitamin C 1000mg", Description: "Immune support with aspartame-free formula", Category: "Vitamins", Price: 350},
	})

	page, err := s.Find(context.Background(), store.ProductQuery{Search: "asp"})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	names := []string{page.Items[0].Name, page.Items[1].Name}
	assert.Contains(t, names, "Aspirin 500mg", "case-insensitive name match")
	assert.Contains(t, names, "Vitamin C 1000mg", "description matches too")

	page, err = s.Find(context.Background(), store.ProductQuery{Search: "ASPIRIN"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Aspirin 500mg", page.Items[0].Name)
}

func TestProductStoreCategoryAndFeaturedFilters(t *testing.T) {
	s := NewProductStore()
	featured := true
	seedProducts(t, s, []models.Product{
		{Name: "Aspirin", Category: "Pain Relief", Featured: true},
		{Name: "Ibuprofen", Category: "Pain Relief"},
		{Name: "Thermometer", Category: "Devices", Featured: true},
	})

	page, err := s.Find(context.Background(), store.ProductQuery{Category: "Pain Relief"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = s.Find(context.Background(), store.ProductQuery{Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = s.Find(context.Background(), store.ProductQuery{Category: "Pain Relief", Featured: &featured})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Aspirin", page.Items[0].Name)
}

func TestProductStorePagination(t *testing.T) {
	s := NewProductStore()
	var products []models.Product
	for i := 0; i < 15; i++ {
		products = append(products, models.Product{Name: "Item", Price: float64(i + 1)})
	}
	seedProducts(t, s, products)

	page, err := s.Find(context.Background(), store.ProductQuery{Limit: 10, Page: 2, Sort: store.SortPriceAsc})
	require.NoError(t, err)

	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 5)
	assert.Equal(t, float64(11), page.Items[0].Price)

	// A page past the end is empty, not an error.
	page, err = s.Find(context.Background(), store.ProductQuery{Limit: 10, Page: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Pages)
}

func TestProductStoreMalformedPagingDefaults(t *testing.T) {
	s := NewProductStore()
	seedProducts(t, s, []models.Product{{Name: "Aspirin"}})

	page, err := s.Find(context.Background(), store.ProductQuery{Limit: -3, Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)
	require.Len(t, page.Items, 1)
}

func TestProductStorePriceSort(t *testing.T) {
	s := NewProductStore()
	seedProducts(t, s, []models.Product{
		{Name: "Mid", Price: 100},
		{Name: "Cheap", Price: 10},
		{Name: "Expensive", Price: 1000},
	})

	page, err := s.Find(context.Background(), store.ProductQuery{Sort: store.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "Cheap", page.Items[0].Name)
	assert.Equal(t, "Expensive", page.Items[2].Name)

	page, err = s.Find(context.Background(), store.ProductQuery{Sort: store.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, "Expensive", page.Items[0].Name)
}

func TestProductStoreCategories(t *testing.T) {
	s := NewProductStore()
	seedProducts(t, s, []models.Product{
		{Name: "A", Category: "Vitamins"},
		{Name: "B", Category: "Pain Relief"},
		{Name: "C", Category: "Vitamins"},
		{Name: "D"},
	})

	categories, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pain Relief", "Vitamins"}, categories)
}

func TestProductStoreCRUD(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := models.Product{Name: "Aspirin", Price: 120, Images: []string{"a.jpg", "b.jpg"}}
	require.NoError(t, s.Create(ctx, &p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "a.jpg", p.Image, "legacy image field tracks images[0]")

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", got.Name)

	got.Price = 130
	updated, err := s.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, float64(130), updated.Price)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, p.ID))
	_, err = s.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), store.ErrNotFound)
}

func TestProductStoreImagesNeverNil(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := models.Product{Name: "Aspirin"}
	require.NoError(t, s.Create(ctx, &p))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Images, "images serializes as [], not null")
	assert.Empty(t, got.Images)

	page, err := s.Find(ctx, store.ProductQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.NotNil(t, page.Items[0].Images)
}

func TestProductStoreReadsAreIsolated(t *testing.T) {
	s := NewProductStore()
	ctx := context.Background()

	p := models.Product{Name: "Aspirin", Images: []string{"a.jpg"}}
	require.NoError(t, s.Create(ctx, &p))

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Images[0] = "tampered.jpg"

	fresh, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", fresh.Images[0])
}
