package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type productStore interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) error
	DeleteProduct(ctx context.Context, id string) error
}

// Service owns the in-memory product index and the admin write path.
type Service interface {
	Load(ctx context.Context) (*Snapshot, error)
	Current() *Snapshot
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) error
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo productStore

	mu   sync.RWMutex
	snap *Snapshot
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo productStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// Load fetches the full product set and swaps the snapshot atomically.
// A failed load leaves the previous snapshot untouched; the caller decides
// whether to retry or surface the failure.
func (s *service) Load(ctx context.Context) (*Snapshot, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}

	sortProducts(products)
	snap := &Snapshot{
		Products:   products,
		Categories: deriveCategories(products),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	return snap, nil
}

// Current returns the active snapshot, or nil before the first successful load.
func (s *service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// CreateProduct writes a new product document. The snapshot is not touched;
// callers reload the catalog when they want the new record visible.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	return s.repo.CreateProduct(ctx, input)
}

// UpdateProduct applies a partial update to an existing product document.
func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) error {
	return s.repo.UpdateProduct(ctx, id, input)
}

// DeleteProduct removes a product document.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func sortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].Category != products[j].Category {
			return products[i].Category < products[j].Category
		}
		return products[i].Name < products[j].Name
	})
}

// deriveCategories collects the distinct category labels, case-sensitive and
// lexicographically sorted, with the wildcard facet first.
func deriveCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
	}

	labels := make([]string, 0, len(seen)+1)
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return append([]string{WildcardCategory}, labels...)
}
