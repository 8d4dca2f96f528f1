package service_test

import (
	"testing"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "session-1"

func seedCatalog(t *testing.T, n int) (*service.CatalogService, []domain.Product) {
	t.Helper()

	ps := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		p := domain.Product{
			ID:       int64(i),
			Title:    "Product",
			Price:    float64(10 * i),
			Category: "gadgets",
			Brand:    "Acme",
		}
		ps = append(ps, p)
	}

	catalog := service.NewCatalogService()
	require.NoError(t, catalog.ReplaceCatalog(t.Context(), ps))
	return catalog, ps
}

func TestCatalogService(t *testing.T) {
	t.Run("ReplaceRecomputesFacetsAndVersion", func(t *testing.T) {
		catalog := service.NewCatalogService()

		_, facets, version := catalog.Snapshot()
		assert.Empty(t, facets.Categories)
		assert.EqualValues(t, 0, version)

		err := catalog.ReplaceCatalog(t.Context(), []domain.Product{
			{ID: 1, Title: "A", Price: 30, Category: "tools", Brand: "Acme"},
		})
		require.NoError(t, err)

		ps, facets, version := catalog.Snapshot()
		assert.Len(t, ps, 1)
		assert.Equal(t, []string{"tools"}, facets.Categories)
		assert.Equal(t, []string{"Acme"}, facets.Brands)
		assert.EqualValues(t, 1, version)
	})

	t.Run("ProductLookup", func(t *testing.T) {
		catalog, ps := seedCatalog(t, 3)

		p, ok := catalog.Product(2)
		require.True(t, ok)
		assert.Equal(t, ps[1], p)

		_, ok = catalog.Product(404)
		assert.False(t, ok)
	})

	t.Run("ProductsInCategoryCaseInsensitive", func(t *testing.T) {
		catalog := service.NewCatalogService()
		err := catalog.ReplaceCatalog(t.Context(), []domain.Product{
			{ID: 1, Title: "A", Price: 10, Category: "Laptops"},
			{ID: 2, Title: "B", Price: 20, Category: "phones"},
			{ID: 3, Title: "C", Price: 30, Category: "laptops"},
		})
		require.NoError(t, err)

		got := catalog.ProductsInCategory("LAPTOPS")
		require.Len(t, got, 2)
		assert.EqualValues(t, 1, got[0].ID)
		assert.EqualValues(t, 3, got[1].ID)
	})
}

func TestBrowseService_View(t *testing.T) {
	t.Run("PaginatesWithCatalogOrder", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 17)
		browser := service.NewBrowseService(catalog, 8)

		pg := browser.View(sid)
		require.Len(t, pg.Items, 8)
		assert.Equal(t, 1, pg.Number)
		assert.Equal(t, 3, pg.TotalPages)
		assert.EqualValues(t, 1, pg.Items[0].ID)
	})

	t.Run("SetPageClampsAndPersists", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 17)
		browser := service.NewBrowseService(catalog, 8)

		pg := browser.SetPage(sid, 10)
		assert.Equal(t, 3, pg.Number)
		require.Len(t, pg.Items, 1)
		assert.EqualValues(t, 17, pg.Items[0].ID)

		// A plain read keeps the stored page.
		assert.Equal(t, 3, browser.View(sid).Number)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		browser := service.NewBrowseService(service.NewCatalogService(), 8)

		pg := browser.View(sid)
		assert.Empty(t, pg.Items)
		assert.Equal(t, 1, pg.Number)
		assert.Equal(t, 1, pg.TotalPages)
	})

	t.Run("SessionsAreIndependent", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 17)
		browser := service.NewBrowseService(catalog, 8)

		browser.SetPage("shopper-a", 2)
		assert.Equal(t, 1, browser.View("shopper-b").Number)
		assert.Equal(t, 2, browser.View("shopper-a").Number)
	})
}

func TestBrowseService_Filters(t *testing.T) {
	t.Run("CriteriaEditResetsPage", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 17)
		browser := service.NewBrowseService(catalog, 8)

		browser.SetPage(sid, 3)
		browser.ToggleCategory(sid, "gadgets")

		assert.Equal(t, 1, browser.View(sid).Number)
	})

	t.Run("FilteredViewFollowsCriteria", func(t *testing.T) {
		catalog := service.NewCatalogService()
		err := catalog.ReplaceCatalog(t.Context(), []domain.Product{
			{ID: 1, Title: "Gaming Laptop", Price: 300, Category: "laptops"},
			{ID: 2, Title: "Mouse", Price: 25, Category: "accessories"},
			{ID: 3, Title: "Office Laptop", Price: 450, Category: "laptops"},
		})
		require.NoError(t, err)
		browser := service.NewBrowseService(catalog, 8)

		browser.ToggleCategory(sid, "laptops")
		pg := browser.View(sid)

		require.Len(t, pg.Items, 2)
		assert.EqualValues(t, 1, pg.Items[0].ID)
		assert.EqualValues(t, 3, pg.Items[1].ID)
	})

	t.Run("FacetsUnaffectedByCriteria", func(t *testing.T) {
		catalog := service.NewCatalogService()
		err := catalog.ReplaceCatalog(t.Context(), []domain.Product{
			{ID: 1, Title: "A", Price: 10, Category: "laptops", Brand: "Acme"},
			{ID: 2, Title: "B", Price: 20, Category: "phones", Brand: "Boxen"},
		})
		require.NoError(t, err)
		browser := service.NewBrowseService(catalog, 8)

		before := browser.Filters(sid).Facets
		browser.ToggleCategory(sid, "laptops")
		browser.SetBrand(sid, "Acme")
		after := browser.Filters(sid).Facets

		assert.Equal(t, before, after)
	})

	t.Run("PriceCeilingClampedToBounds", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 5) // prices 10..50
		browser := service.NewBrowseService(catalog, 8)

		v := browser.SetPriceCeiling(sid, 9000)
		assert.Equal(t, 50.0, v.Criteria.PriceCeiling)

		v = browser.SetPriceCeiling(sid, 25)
		assert.Equal(t, 25.0, v.Criteria.PriceCeiling)

		pg := browser.View(sid)
		assert.Len(t, pg.Items, 2)
	})

	t.Run("ResetKeepsSearch", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 5)
		browser := service.NewBrowseService(catalog, 8)

		browser.SetSearchText(sid, "product")
		browser.ToggleCategory(sid, "gadgets")
		browser.SetBrand(sid, "Acme")
		v := browser.ResetFilters(sid)

		assert.Equal(t, "product", v.Criteria.SearchText)
		assert.Empty(t, v.Criteria.Categories)
		assert.Empty(t, v.Criteria.Brand)
		assert.Equal(t, 50.0, v.Criteria.PriceCeiling)
	})

	t.Run("CatalogReplacementRebasesSession", func(t *testing.T) {
		catalog, _ := seedCatalog(t, 17) // prices 10..170, ceiling 170
		browser := service.NewBrowseService(catalog, 8)

		browser.SetSearchText(sid, "product")
		browser.SetPriceCeiling(sid, 30)
		browser.SetPage(sid, 2)

		err := catalog.ReplaceCatalog(t.Context(), []domain.Product{
			{ID: 1, Title: "Product One", Price: 80, Category: "gadgets"},
			{ID: 2, Title: "Product Two", Price: 90, Category: "gadgets"},
		})
		require.NoError(t, err)

		v := browser.Filters(sid)
		// Search survives, the ceiling snaps to the new maximum and the
		// shopper is back on page 1.
		assert.Equal(t, "product", v.Criteria.SearchText)
		assert.Equal(t, 90.0, v.Criteria.PriceCeiling)
		assert.Equal(t, 1, browser.View(sid).Number)
		assert.Len(t, browser.View(sid).Items, 2)
	})
}

func TestCartService(t *testing.T) {
	mouse := domain.Product{ID: 1, Title: "Mouse", Price: 20}

	t.Run("AddAccumulates", func(t *testing.T) {
		carts := service.NewCartService()

		carts.AddItem(sid, mouse, 1)
		v := carts.AddItem(sid, mouse, 1)

		assert.Equal(t, 1, v.LineCount)
		assert.Equal(t, 2, v.TotalQuantity)
		assert.Equal(t, 40.0, v.TotalPrice)
	})

	t.Run("DecreaseFloorThenRemove", func(t *testing.T) {
		carts := service.NewCartService()
		carts.AddItem(sid, mouse, 1)

		v := carts.DecreaseItem(sid, mouse.ID)
		line, ok := v.Line(mouse.ID)
		require.True(t, ok)
		assert.Equal(t, 1, line.Quantity)

		v = carts.RemoveItem(sid, mouse.ID)
		assert.Equal(t, 0, v.LineCount)
	})

	t.Run("UnknownSessionHasEmptyCart", func(t *testing.T) {
		carts := service.NewCartService()

		v := carts.Cart("never-seen")
		assert.Equal(t, 0, v.LineCount)
		assert.Empty(t, v.Lines)
	})

	t.Run("SessionsAreIndependent", func(t *testing.T) {
		carts := service.NewCartService()

		carts.AddItem("shopper-a", mouse, 3)
		assert.Equal(t, 0, carts.Cart("shopper-b").LineCount)
		assert.Equal(t, 3, carts.Cart("shopper-a").TotalQuantity)
	})

	t.Run("Clear", func(t *testing.T) {
		carts := service.NewCartService()
		carts.AddItem(sid, mouse, 2)

		v := carts.ClearCart(sid)
		assert.Equal(t, 0, v.LineCount)
		assert.Equal(t, 0.0, v.TotalPrice)
	})
}
