package kafka

import (
	"github.com/pluscart/storefront/internal/core/domain"
	"github.com/pluscart/storefront/pkg/schema"
)

func catalogToSchemaV1(ps []domain.Product) schema.CatalogV1 {
	s := schema.CatalogV1{Products: make([]schema.ProductV1, 0, len(ps))}
	for _, p := range ps {
		s.Products = append(s.Products, schema.ProductV1{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Category:  p.Category,
			Brand:     p.Brand,
			Thumbnail: p.Thumbnail,
		})
	}
	return s
}

func catalogToDomain(s schema.CatalogV1) []domain.Product {
	ps := make([]domain.Product, 0, len(s.Products))
	for _, v := range s.Products {
		ps = append(ps, domain.Product{
			ID:        v.ProductID,
			Title:     v.Title,
			Price:     v.Price,
			Category:  v.Category,
			Brand:     v.Brand,
			Thumbnail: v.Thumbnail,
		})
	}
	return ps
}
