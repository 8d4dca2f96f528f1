package httphandler

import (
	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/pkg/paginate"
)

type (
	// Product is the wire shape of a catalog record. Price is a pointer
	// so products whose source price failed to parse serialize as null
	// instead of breaking JSON encoding.
	Product struct {
		ID        int64    `json:"id"`
		Title     string   `json:"title"`
		Price     *float64 `json:"price"`
		Category  string   `json:"category,omitempty"`
		Brand     string   `json:"brand,omitempty"`
		Thumbnail string   `json:"thumbnail,omitempty"`
	}

	ProductPage struct {
		Items      []Product `json:"items"`
		Page       int       `json:"page"`
		TotalPages int       `json:"total_pages"`
		TotalItems int       `json:"total_items"`
	}

	PriceBounds struct {
		Floor   float64 `json:"floor"`
		Ceiling float64 `json:"ceiling"`
	}

	Criteria struct {
		SearchText   string   `json:"search_text"`
		Categories   []string `json:"categories"`
		Brand        string   `json:"brand"`
		PriceCeiling float64  `json:"price_ceiling"`
	}

	Filters struct {
		Categories []string    `json:"categories"`
		Brands     []string    `json:"brands"`
		Price      PriceBounds `json:"price"`
		Criteria   Criteria    `json:"criteria"`
	}

	CartLine struct {
		Product   Product  `json:"product"`
		Quantity  int      `json:"quantity"`
		LineTotal *float64 `json:"line_total"`
	}

	Cart struct {
		Lines         []CartLine `json:"lines"`
		LineCount     int        `json:"line_count"`
		TotalQuantity int        `json:"total_quantity"`
		TotalPrice    float64    `json:"total_price"`
	}
)

type (
	searchRequest struct {
		Text string `json:"text"`
	}

	categoryRequest struct {
		Category string `json:"category"`
	}

	brandRequest struct {
		Brand string `json:"brand"`
	}

	priceRequest struct {
		Ceiling float64 `json:"ceiling"`
	}

	addItemRequest struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
)

func toWireProduct(p domain.Product) Product {
	wp := Product{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Brand:     p.Brand,
		Thumbnail: p.Thumbnail,
	}
	if p.HasValidPrice() {
		price := p.Price
		wp.Price = &price
	}
	return wp
}

func toWireProducts(ps []domain.Product) []Product {
	wps := make([]Product, 0, len(ps))
	for _, p := range ps {
		wps = append(wps, toWireProduct(p))
	}
	return wps
}

func toWirePage(pg paginate.Page[domain.Product]) ProductPage {
	return ProductPage{
		Items:      toWireProducts(pg.Items),
		Page:       pg.Number,
		TotalPages: pg.TotalPages,
		TotalItems: pg.TotalItems,
	}
}

func toWireFilters(v domain.FilterView) Filters {
	categories := v.Criteria.Categories
	if categories == nil {
		categories = make([]string, 0)
	}
	return Filters{
		Categories: v.Facets.Categories,
		Brands:     v.Facets.Brands,
		Price: PriceBounds{
			Floor:   v.Facets.Price.Floor,
			Ceiling: v.Facets.Price.Ceiling,
		},
		Criteria: Criteria{
			SearchText:   v.Criteria.SearchText,
			Categories:   categories,
			Brand:        v.Criteria.Brand,
			PriceCeiling: v.Criteria.PriceCeiling,
		},
	}
}

func toWireCart(v domain.CartView) Cart {
	lines := make([]CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		wl := CartLine{Product: toWireProduct(l.Product), Quantity: l.Quantity}
		if l.Product.HasValidPrice() {
			total := l.Product.Price * float64(l.Quantity)
			wl.LineTotal = &total
		}
		lines = append(lines, wl)
	}
	return Cart{
		Lines:         lines,
		LineCount:     v.LineCount,
		TotalQuantity: v.TotalQuantity,
		TotalPrice:    v.TotalPrice,
	}
}
