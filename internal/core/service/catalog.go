package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/internal/core/port"
)

var _ port.CatalogReplacer = (*CatalogService)(nil)
var _ port.CatalogReader = (*CatalogService)(nil)

// CatalogService holds the current catalog snapshot and its derived
// facet index. The catalog is replaced wholesale; facets are recomputed
// on replacement only, never on criteria changes. The version counter
// lets dependents detect replacements and recompute lazily.
type CatalogService struct {
	mu       sync.RWMutex
	products []domain.Product
	facets   domain.Facets
	version  uint64
}

func NewCatalogService() *CatalogService {
	return &CatalogService{facets: domain.DeriveFacets(nil)}
}

func (s *CatalogService) ReplaceCatalog(
	ctx context.Context, ps []domain.Product,
) error {
	const op = "CatalogService.ReplaceCatalog"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	facets := domain.DeriveFacets(ps)

	s.mu.Lock()
	s.products = slices.Clone(ps)
	s.facets = facets
	s.version++
	version := s.version
	s.mu.Unlock()

	slog.Info("catalog replaced",
		"op", op,
		"nProducts", len(ps),
		"nCategories", len(facets.Categories),
		"nBrands", len(facets.Brands),
		"version", version,
	)
	return nil
}

// Snapshot returns the catalog, its facets and the replacement version.
// The returned slice must not be mutated.
func (s *CatalogService) Snapshot() ([]domain.Product, domain.Facets, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products, s.facets, s.version
}

func (s *CatalogService) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ProductsInCategory returns the catalog subset whose category equals
// the given name case-insensitively, in catalog order.
func (s *CatalogService) ProductsInCategory(name string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ps := make([]domain.Product, 0)
	for _, p := range s.products {
		if strings.EqualFold(p.Category, name) {
			ps = append(ps, p)
		}
	}
	return ps
}
