package catalog

import "github.com/shopspring/decimal"

// WildcardCategory is the synthetic facet prepended to the derived category
// list; selecting it shows the whole catalog.
const WildcardCategory = "all"

// Product is a sellable item as loaded from the document store. Immutable
// once part of a snapshot.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	ImageURL *string         `json:"image_url,omitempty"`
}

// Snapshot is the full product set for the current session plus its derived
// category facets. Replaced wholesale on reload, never partially mutated.
type Snapshot struct {
	Products   []Product
	Categories []string
}

// Lookup returns the product with the given id, if present.
func (s *Snapshot) Lookup(id string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
