package domain

import (
	"math"
	"slices"
	"strings"
)

// PriceCap is the fixed upper bound used when deriving price-range
// defaults and when filtering by price.
const PriceCap = 500

type PriceBounds struct {
	Floor   float64
	Ceiling float64
}

// Facets are the selectable filter options derived from the full
// catalog, never from a filtered view.
type Facets struct {
	Categories []string
	Brands     []string
	Price      PriceBounds
}

// DeriveFacets computes distinct non-empty categories and brands in
// first-seen catalog order, and price bounds over valid prices up to
// [PriceCap]. A non-empty catalog without a single valid price in range
// falls back to [0, PriceCap]; an empty catalog yields zero bounds.
func DeriveFacets(catalog []Product) Facets {
	f := Facets{
		Categories: make([]string, 0),
		Brands:     make([]string, 0),
	}
	if len(catalog) == 0 {
		return f
	}

	seenCategory := make(map[string]struct{})
	seenBrand := make(map[string]struct{})
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	var priced bool

	for _, p := range catalog {
		if p.Category != "" {
			if _, ok := seenCategory[p.Category]; !ok {
				seenCategory[p.Category] = struct{}{}
				f.Categories = append(f.Categories, p.Category)
			}
		}
		if p.Brand != "" {
			if _, ok := seenBrand[p.Brand]; !ok {
				seenBrand[p.Brand] = struct{}{}
				f.Brands = append(f.Brands, p.Brand)
			}
		}
		if p.HasValidPrice() && p.Price <= PriceCap {
			priced = true
			minPrice = math.Min(minPrice, p.Price)
			maxPrice = math.Max(maxPrice, p.Price)
		}
	}

	if priced {
		f.Price = PriceBounds{
			Floor:   math.Floor(minPrice),
			Ceiling: math.Ceil(maxPrice),
		}
	} else {
		f.Price = PriceBounds{Floor: 0, Ceiling: PriceCap}
	}
	return f
}

// Criteria is the current combination of active filter settings.
// Mutation methods produce a new value, the receiver is never changed.
type Criteria struct {
	SearchText   string
	Categories   []string
	Brand        string
	PriceFloor   float64
	PriceCeiling float64
}

// NewCriteria returns the default criteria for a catalog with the given
// price bounds: no restrictions, ceiling at the derived maximum.
func NewCriteria(b PriceBounds) Criteria {
	return Criteria{PriceFloor: b.Floor, PriceCeiling: b.Ceiling}
}

func (c Criteria) WithSearchText(text string) Criteria {
	c.SearchText = text
	return c
}

// WithToggledCategory adds the category to the selected set, or removes
// it when already selected.
func (c Criteria) WithToggledCategory(name string) Criteria {
	if i := slices.Index(c.Categories, name); i >= 0 {
		c.Categories = slices.Delete(slices.Clone(c.Categories), i, i+1)
		return c
	}
	c.Categories = append(slices.Clone(c.Categories), name)
	return c
}

// WithBrand selects a single brand; the empty string clears the
// restriction.
func (c Criteria) WithBrand(brand string) Criteria {
	c.Brand = brand
	return c
}

// WithPriceCeiling sets the inclusive upper price bound, clamped into
// the catalog-derived bounds.
func (c Criteria) WithPriceCeiling(v float64, b PriceBounds) Criteria {
	c.PriceCeiling = math.Max(b.Floor, math.Min(v, b.Ceiling))
	return c
}

// Reset clears category, brand and price restrictions but keeps the
// search text.
func (c Criteria) Reset(b PriceBounds) Criteria {
	return Criteria{
		SearchText:   c.SearchText,
		PriceFloor:   b.Floor,
		PriceCeiling: b.Ceiling,
	}
}

// Matches reports whether the product passes every active predicate.
func (c Criteria) Matches(p Product) bool {
	if search := strings.TrimSpace(c.SearchText); search != "" {
		title := strings.ToLower(p.Title)
		if !strings.Contains(title, strings.ToLower(search)) {
			return false
		}
	}

	if len(c.Categories) > 0 && !slices.Contains(c.Categories, p.Category) {
		return false
	}

	if c.Brand != "" && p.Brand != c.Brand {
		return false
	}

	ceiling := math.Min(c.PriceCeiling, PriceCap)
	// NaN prices fail both comparisons.
	return p.Price >= c.PriceFloor && p.Price <= ceiling
}

// Filter returns the catalog subset matching the criteria, preserving
// catalog order. Pure: neither argument is mutated.
func Filter(catalog []Product, c Criteria) []Product {
	filtered := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if c.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterView is the read model for rendering filter controls.
type FilterView struct {
	Facets   Facets
	Criteria Criteria
}
