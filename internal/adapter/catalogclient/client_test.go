package catalogclient_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pluscart/storefront/internal/adapter/catalogclient"
	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReplacer struct {
	mock.Mock
}

func (m *MockReplacer) ReplaceCatalog(
	ctx context.Context, ps []domain.Product,
) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

func TestDecodeCatalog(t *testing.T) {
	t.Run("Envelope", func(t *testing.T) {
		doc := `{"products": [
			{"id": 1, "title": "Gaming Laptop", "price": 299.99,
			 "category": "laptops", "brand": "Acme",
			 "thumbnail": "https://cdn.test/laptop.png"}
		], "total": 1, "skip": 0, "limit": 0}`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, domain.Product{
			ID:        1,
			Title:     "Gaming Laptop",
			Price:     299.99,
			Category:  "laptops",
			Brand:     "Acme",
			Thumbnail: "https://cdn.test/laptop.png",
		}, ps[0])
	})

	t.Run("BareArray", func(t *testing.T) {
		doc := `[{"id": 2, "title": "Mouse", "price": 25,
			"category": "accessories", "brand": "Clicker"}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.EqualValues(t, 2, ps[0].ID)
	})

	t.Run("BrandObject", func(t *testing.T) {
		doc := `[{"id": 3, "title": "Hub", "price": 30,
			"brand": {"name": "Boxen", "country": "DE"}}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, "Boxen", ps[0].Brand)
	})

	t.Run("MissingBrand", func(t *testing.T) {
		doc := `[{"id": 4, "title": "Cable", "price": 5}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Empty(t, ps[0].Brand)
	})

	t.Run("NumericStringPrice", func(t *testing.T) {
		doc := `[{"id": 5, "title": "Stand", "price": "45.50"}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 45.50, ps[0].Price)
	})

	t.Run("GarbagePriceBecomesInvalid", func(t *testing.T) {
		doc := `[{"id": 6, "title": "Mystery", "price": "call us"}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		assert.True(t, math.IsNaN(ps[0].Price))
		assert.False(t, ps[0].HasValidPrice())
	})

	t.Run("MissingPriceBecomesInvalid", func(t *testing.T) {
		doc := `[{"id": 7, "title": "No Price Tag"},
			{"id": 8, "title": "Null Price", "price": null}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.False(t, ps[0].HasValidPrice())
		assert.False(t, ps[1].HasValidPrice())
	})

	t.Run("ImageFallsBackToThumbnail", func(t *testing.T) {
		doc := `[{"id": 7, "title": "Lamp", "price": 35,
			"image": "https://cdn.test/lamp.png"}]`

		ps, err := catalogclient.DecodeCatalog(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/lamp.png", ps[0].Thumbnail)
	})

	t.Run("EmptyProducts", func(t *testing.T) {
		ps, err := catalogclient.DecodeCatalog(strings.NewReader(`{}`))
		require.NoError(t, err)
		assert.Empty(t, ps)
	})

	t.Run("MalformedDocument", func(t *testing.T) {
		_, err := catalogclient.DecodeCatalog(strings.NewReader(`{"products":`))
		assert.Error(t, err)
	})
}

func TestCatalogClient_Run(t *testing.T) {
	t.Run("InitialFetchReplacesCatalog", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/products", r.URL.Path)
				assert.Equal(t, "0", r.URL.Query().Get("limit"))
				w.Write([]byte(
					`{"products": [{"id": 1, "title": "A", "price": 10}]}`,
				))
			}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		replacer := new(MockReplacer)
		replacer.On(
			"ReplaceCatalog", mock.Anything, mock.Anything,
		).Return(nil).Run(func(args mock.Arguments) {
			ps := args.Get(1).([]domain.Product)
			require.Len(t, ps, 1)
			assert.EqualValues(t, 1, ps[0].ID)
			cancel() // stop the refresh loop after the initial fetch
		})

		client := catalogclient.New(srv.URL, time.Hour, replacer)
		client.Run(ctx)

		replacer.AssertCalled(t, "ReplaceCatalog", mock.Anything, mock.Anything)
	})

	t.Run("UpstreamFailureKeepsOldCatalog", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
		defer srv.Close()

		replacer := new(MockReplacer)

		// Short deadline cuts the retry loop after the first failed attempt.
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		client := catalogclient.New(srv.URL, 0, replacer)
		client.Run(ctx)

		replacer.AssertNotCalled(
			t, "ReplaceCatalog", mock.Anything, mock.Anything,
		)
	})
}
