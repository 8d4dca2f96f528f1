package service

import (
	"sync"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/internal/core/port"
	"github.com/pluscart/storefront/pkg/paginate"
)

var _ port.Browser = (*BrowseService)(nil)

type browseState struct {
	criteria domain.Criteria
	page     int
	version  uint64
}

// BrowseService keeps per-session filter criteria and page number and
// derives the filtered, paginated view on demand. Recomputation is
// pull-based: every read re-applies the criteria to the current catalog
// snapshot, so a view is never stored independently of its inputs.
type BrowseService struct {
	catalog  *CatalogService
	pageSize int

	mu       sync.Mutex
	sessions map[string]*browseState
}

func NewBrowseService(catalog *CatalogService, pageSize int) *BrowseService {
	if pageSize < 1 {
		pageSize = 1
	}
	return &BrowseService{
		catalog:  catalog,
		pageSize: pageSize,
		sessions: make(map[string]*browseState),
	}
}

// state returns the session state rebased onto the given catalog
// version. A replacement keeps search, categories and brand, resets the
// price ceiling to the newly derived maximum and drops back to page 1.
// Callers must hold s.mu.
func (s *BrowseService) state(
	sessionID string, facets domain.Facets, version uint64,
) *browseState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &browseState{
			criteria: domain.NewCriteria(facets.Price),
			page:     1,
			version:  version,
		}
		s.sessions[sessionID] = st
		return st
	}

	if st.version != version {
		st.criteria.PriceFloor = facets.Price.Floor
		st.criteria.PriceCeiling = facets.Price.Ceiling
		st.page = 1
		st.version = version
	}
	return st
}

func (s *BrowseService) View(sessionID string) paginate.Page[domain.Product] {
	products, facets, version := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID, facets, version)
	filtered := domain.Filter(products, st.criteria)
	page := paginate.Paginate(filtered, s.pageSize, st.page)
	st.page = page.Number
	return page
}

func (s *BrowseService) SetPage(
	sessionID string, page int,
) paginate.Page[domain.Product] {
	products, facets, version := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID, facets, version)
	filtered := domain.Filter(products, st.criteria)
	pg := paginate.Paginate(filtered, s.pageSize, page)
	st.page = pg.Number
	return pg
}

func (s *BrowseService) Filters(sessionID string) domain.FilterView {
	_, facets, version := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID, facets, version)
	return domain.FilterView{Facets: facets, Criteria: st.criteria}
}

func (s *BrowseService) SetSearchText(
	sessionID, text string,
) domain.FilterView {
	return s.edit(sessionID, func(c domain.Criteria, _ domain.PriceBounds) domain.Criteria {
		return c.WithSearchText(text)
	})
}

func (s *BrowseService) ToggleCategory(
	sessionID, category string,
) domain.FilterView {
	return s.edit(sessionID, func(c domain.Criteria, _ domain.PriceBounds) domain.Criteria {
		return c.WithToggledCategory(category)
	})
}

func (s *BrowseService) SetBrand(sessionID, brand string) domain.FilterView {
	return s.edit(sessionID, func(c domain.Criteria, _ domain.PriceBounds) domain.Criteria {
		return c.WithBrand(brand)
	})
}

func (s *BrowseService) SetPriceCeiling(
	sessionID string, ceiling float64,
) domain.FilterView {
	return s.edit(sessionID, func(c domain.Criteria, b domain.PriceBounds) domain.Criteria {
		return c.WithPriceCeiling(ceiling, b)
	})
}

func (s *BrowseService) ResetFilters(sessionID string) domain.FilterView {
	return s.edit(sessionID, func(c domain.Criteria, b domain.PriceBounds) domain.Criteria {
		return c.Reset(b)
	})
}

// edit applies a criteria mutation and resets the page to 1.
func (s *BrowseService) edit(
	sessionID string,
	fn func(domain.Criteria, domain.PriceBounds) domain.Criteria,
) domain.FilterView {
	_, facets, version := s.catalog.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID, facets, version)
	st.criteria = fn(st.criteria, facets.Price)
	st.page = 1
	return domain.FilterView{Facets: facets, Criteria: st.criteria}
}
