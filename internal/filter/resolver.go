package filter

import (
	"strings"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

const wildcardLabel = catalog.WildcardCategory

// Resolve computes the displayed product subset for the given selector.
// Pure function of its inputs; output preserves snapshot order, so equal
// relevance ties break on the catalog's category+name ordering.
func Resolve(snap *catalog.Snapshot, sel Selector) []catalog.Product {
	if snap == nil {
		return nil
	}

	switch sel.Kind() {
	case KindCategory:
		// Case-sensitive equality, no normalization.
		matched := make([]catalog.Product, 0, len(snap.Products))
		for _, p := range snap.Products {
			if p.Category == sel.Value() {
				matched = append(matched, p)
			}
		}
		return matched

	case KindSearchTerm:
		term := strings.ToLower(sel.Value())
		matched := make([]catalog.Product, 0, len(snap.Products))
		for _, p := range snap.Products {
			if strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Category), term) {
				matched = append(matched, p)
			}
		}
		return matched

	default:
		out := make([]catalog.Product, len(snap.Products))
		copy(out, snap.Products)
		return out
	}
}
