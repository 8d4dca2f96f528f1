package catalogclient

import (
	"encoding/json"
	"strconv"

	"github.com/pluscart/storefront/internal/core/domain"
)

type payload struct {
	Products []product `json:"products"`
}

type product struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Price     *priceField `json:"price"`
	Category  string      `json:"category"`
	Brand     brandField  `json:"brand"`
	Thumbnail string      `json:"thumbnail"`
	Image     string      `json:"image"`
}

func (p product) toDomain() domain.Product {
	thumbnail := p.Thumbnail
	if thumbnail == "" {
		thumbnail = p.Image
	}

	// A pointer keeps absent and null prices apart from an actual 0:
	// both leave the field nil and become an invalid price.
	price := domain.InvalidPrice()
	if p.Price != nil {
		price = float64(*p.Price)
	}

	return domain.Product{
		ID:        p.ID,
		Title:     p.Title,
		Price:     price,
		Category:  p.Category,
		Brand:     string(p.Brand),
		Thumbnail: thumbnail,
	}
}

// brandField normalizes the upstream brand shape: sometimes a plain
// string, sometimes an object with a name field, sometimes absent.
type brandField string

func (b *brandField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = brandField(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*b = brandField(obj.Name)
		return nil
	}

	*b = ""
	return nil
}

// priceField parses the upstream price as a JSON number or a numeric
// string. Anything else becomes an invalid price, which the core keeps
// out of bound computation and price filtering.
type priceField float64

func (p *priceField) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*p = priceField(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*p = priceField(f)
			return nil
		}
	}

	*p = priceField(domain.InvalidPrice())
	return nil
}
