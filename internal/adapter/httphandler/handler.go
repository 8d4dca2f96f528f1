package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pluscart/storefront/internal/core/port"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// GET /v1/products?page=N        filtered, paginated grid view
// GET /v1/products/{id}          single product
// GET /v1/categories/{category}/products

type CatalogHandler struct {
	browser port.Browser
	reader  port.CatalogReader
}

func RegisterCatalog(
	mux *http.ServeMux, browser port.Browser, reader port.CatalogReader,
) {
	h := CatalogHandler{browser, reader}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories/{category}/products", h.GetCategoryProducts)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	sid := sessionID(r)

	rawPage := r.URL.Query().Get("page")
	if rawPage == "" {
		writeJSON(w, http.StatusOK, toWirePage(h.browser.View(sid)))
		return
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		log.Warn("failed to parse page number", "page", rawPage)
		return
	}

	// Out-of-range numbers are clamped, never rejected.
	writeJSON(w, http.StatusOK, toWirePage(h.browser.SetPage(sid, page)))
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, ok := h.reader.Product(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toWireProduct(p))
}

func (h CatalogHandler) GetCategoryProducts(
	w http.ResponseWriter, r *http.Request,
) {
	category := r.PathValue("category")
	ps := h.reader.ProductsInCategory(category)
	writeJSON(w, http.StatusOK, struct {
		Items []Product `json:"items"`
	}{toWireProducts(ps)})
}

// GET    /v1/filters             facets plus current criteria
// PUT    /v1/filters/search
// POST   /v1/filters/categories  toggle one category
// PUT    /v1/filters/brand       empty brand clears the restriction
// PUT    /v1/filters/price
// DELETE /v1/filters             reset all but the search text

type FiltersHandler struct {
	browser port.Browser
}

func RegisterFilters(mux *http.ServeMux, browser port.Browser) {
	h := FiltersHandler{browser}
	mux.HandleFunc("GET /v1/filters", h.GetFilters)
	mux.HandleFunc("PUT /v1/filters/search", h.PutSearch)
	mux.HandleFunc("POST /v1/filters/categories", h.ToggleCategory)
	mux.HandleFunc("PUT /v1/filters/brand", h.PutBrand)
	mux.HandleFunc("PUT /v1/filters/price", h.PutPrice)
	mux.HandleFunc("DELETE /v1/filters", h.Reset)
}

func (h FiltersHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWireFilters(h.browser.Filters(sessionID(r))))
}

func (h FiltersHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.PutSearch"

	var req searchRequest
	if !decodeBody(w, r, op, &req) {
		return
	}
	v := h.browser.SetSearchText(sessionID(r), req.Text)
	writeJSON(w, http.StatusOK, toWireFilters(v))
}

func (h FiltersHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.ToggleCategory"

	var req categoryRequest
	if !decodeBody(w, r, op, &req) {
		return
	}
	if req.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	v := h.browser.ToggleCategory(sessionID(r), req.Category)
	writeJSON(w, http.StatusOK, toWireFilters(v))
}

func (h FiltersHandler) PutBrand(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.PutBrand"

	var req brandRequest
	if !decodeBody(w, r, op, &req) {
		return
	}
	v := h.browser.SetBrand(sessionID(r), req.Brand)
	writeJSON(w, http.StatusOK, toWireFilters(v))
}

func (h FiltersHandler) PutPrice(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.PutPrice"

	var req priceRequest
	if !decodeBody(w, r, op, &req) {
		return
	}
	v := h.browser.SetPriceCeiling(sessionID(r), req.Ceiling)
	writeJSON(w, http.StatusOK, toWireFilters(v))
}

func (h FiltersHandler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWireFilters(h.browser.ResetFilters(sessionID(r))))
}

// GET    /v1/cart
// POST   /v1/cart/items          add product with a chosen quantity
// POST   /v1/cart/items/{id}/increase
// POST   /v1/cart/items/{id}/decrease   removes the line at quantity 1
// DELETE /v1/cart/items/{id}
// DELETE /v1/cart

type CartHandler struct {
	carts  port.CartManager
	reader port.CatalogReader
}

func RegisterCart(
	mux *http.ServeMux, carts port.CartManager, reader port.CatalogReader,
) {
	h := CartHandler{carts, reader}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("POST /v1/cart/items/{id}/increase", h.IncreaseItem)
	mux.HandleFunc("POST /v1/cart/items/{id}/decrease", h.DecreaseItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWireCart(h.carts.Cart(sessionID(r))))
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req addItemRequest
	if !decodeBody(w, r, op, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	p, ok := h.reader.Product(req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	v := h.carts.AddItem(sessionID(r), p, req.Quantity)
	writeJSON(w, http.StatusOK, toWireCart(v))

	log.Info("item added", "productID", req.ProductID, "quantity", req.Quantity)
}

func (h CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, toWireCart(h.carts.IncreaseItem(sessionID(r), id)))
}

// DecreaseItem removes the line when it sits at quantity 1. The store
// itself never drops below 1; the removal decision is made here.
func (h CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	sid := sessionID(r)
	if line, ok := h.carts.Cart(sid).Line(id); ok && line.Quantity == 1 {
		writeJSON(w, http.StatusOK, toWireCart(h.carts.RemoveItem(sid, id)))
		return
	}
	writeJSON(w, http.StatusOK, toWireCart(h.carts.DecreaseItem(sid, id)))
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, toWireCart(h.carts.RemoveItem(sessionID(r), id)))
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toWireCart(h.carts.ClearCart(sessionID(r))))
}

func decodeBody(
	w http.ResponseWriter, r *http.Request, op string, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		slog.With("op", op).Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}
