package service

import (
	"sync"

	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/internal/core/port"
)

var _ port.CartManager = (*CartService)(nil)

// CartService keeps one cart per shopper session, created empty on
// first use and gone at process end. It shares no state with the
// browse side; the two are independent resources.
type CartService struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartService() *CartService {
	return &CartService{carts: make(map[string]*domain.Cart)}
}

// cart returns the session's cart, creating it when absent.
// Callers must hold s.mu.
func (s *CartService) cart(sessionID string) *domain.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = domain.NewCart()
		s.carts[sessionID] = c
	}
	return c
}

func (s *CartService) Cart(sessionID string) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart(sessionID).View()
}

func (s *CartService) AddItem(
	sessionID string, p domain.Product, quantity int,
) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Add(p, quantity)
	return c.View()
}

func (s *CartService) IncreaseItem(
	sessionID string, id int64,
) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Increase(id)
	return c.View()
}

// DecreaseItem is floor-guarded at quantity 1. The "remove at the
// floor" policy belongs to the calling workflow, see the cart handler.
func (s *CartService) DecreaseItem(
	sessionID string, id int64,
) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Decrease(id)
	return c.View()
}

func (s *CartService) RemoveItem(
	sessionID string, id int64,
) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Remove(id)
	return c.View()
}

func (s *CartService) ClearCart(sessionID string) domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(sessionID)
	c.Clear()
	return c.View()
}
