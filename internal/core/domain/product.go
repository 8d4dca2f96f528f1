package domain

import "math"

// A Product is an immutable catalog record.
//
// Brand and Category are normalized to plain strings at the ingestion
// boundary. Price is NaN when the source value was not numeric, so it
// fails every price predicate and stays out of bound computation.
type Product struct {
	ID        int64
	Title     string
	Price     float64
	Category  string
	Brand     string
	Thumbnail string
}

func (p Product) HasValidPrice() bool {
	return !math.IsNaN(p.Price)
}

// InvalidPrice marks a product price that could not be parsed.
func InvalidPrice() float64 {
	return math.NaN()
}
