package port

import (
	"context"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/pkg/paginate"
)

// CatalogReplacer accepts a wholesale catalog replacement from an
// ingestion adapter (HTTP fetch layer or catalog feed).
type CatalogReplacer interface {
	ReplaceCatalog(context.Context, []domain.Product) error
}

// CatalogReader serves single-product and category lookups against the
// full, unfiltered catalog.
type CatalogReader interface {
	Product(id int64) (domain.Product, bool)
	ProductsInCategory(name string) []domain.Product
}

// Browser derives a shopper's filtered, paginated product view and
// edits the shopper's filter criteria. Criteria edits reset the page
// to 1 and answer with the refreshed filter read model.
type Browser interface {
	View(sessionID string) paginate.Page[domain.Product]
	SetPage(sessionID string, page int) paginate.Page[domain.Product]
	Filters(sessionID string) domain.FilterView
	SetSearchText(sessionID, text string) domain.FilterView
	ToggleCategory(sessionID, category string) domain.FilterView
	SetBrand(sessionID, brand string) domain.FilterView
	SetPriceCeiling(sessionID string, ceiling float64) domain.FilterView
	ResetFilters(sessionID string) domain.FilterView
}

// CartManager mutates a shopper's cart. All operations are total and
// return the refreshed cart read model.
type CartManager interface {
	Cart(sessionID string) domain.CartView
	AddItem(sessionID string, p domain.Product, quantity int) domain.CartView
	IncreaseItem(sessionID string, id int64) domain.CartView
	DecreaseItem(sessionID string, id int64) domain.CartView
	RemoveItem(sessionID string, id int64) domain.CartView
	ClearCart(sessionID string) domain.CartView
}
