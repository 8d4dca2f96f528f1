package schema

const CatalogSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog",
	"fields": [
		{"name": "products", "type": {"type": "array", "items": {
			"type": "record",
			"name": "product",
			"fields": [
				{"name": "product_id", "type": "long"},
				{"name": "title", "type": "string"},
				{"name": "price", "type": "double"},
				{"name": "category", "type": "string"},
				{"name": "brand", "type": "string"},
				{"name": "thumbnail", "type": "string"}
			]
		}}}
	]
}`

type (
	// CatalogV1 is one catalog feed record: the complete product list.
	// Consuming a record replaces the catalog wholesale.
	CatalogV1 struct {
		Products []ProductV1 `avro:"products"`
	}

	ProductV1 struct {
		ProductID int64   `avro:"product_id"`
		Title     string  `avro:"title"`
		Price     float64 `avro:"price"`
		Category  string  `avro:"category"`
		Brand     string  `avro:"brand"`
		Thumbnail string  `avro:"thumbnail"`
	}
)
