package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Line aggregates one product inside the cart. Name, price and image are
// captured at add time so the cart keeps rendering even if the catalog
// changes underneath it.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  *string         `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart is a read-only view of the current lines plus derived totals. Totals
// are recomputed on every snapshot, never stored, so lines and totals cannot
// disagree.
type Cart struct {
	Lines      []Line          `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type catalogIndex interface {
	Current() *catalog.Snapshot
}

// Store owns the cart lines and their persistence round-trip. Every mutation
// overwrites the durable value under one fixed key (last-write-wins).
type Store struct {
	kv    kvStore
	key   string
	index catalogIndex
	logg  *logger.Logger

	mu    sync.Mutex
	lines []Line
}

// NewStore builds a cart store persisting under the provided key.
func NewStore(kv kvStore, key string, index catalogIndex, logg *logger.Logger) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("durable store required")
	}
	if key == "" {
		return nil, fmt.Errorf("persistence key required")
	}
	if index == nil {
		return nil, fmt.Errorf("catalog index required")
	}
	return &Store{kv: kv, key: key, index: index, logg: logg}, nil
}

// AddItem resolves the product in the current catalog and either inserts a
// new line with quantity 1 or increments the existing line. Insertion order
// is preserved.
func (s *Store) AddItem(ctx context.Context, productID string) error {
	snap := s.index.Current()
	product, ok := snap.Lookup(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not in catalog")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  1,
		})
	}

	return s.persistLocked(ctx)
}

// ChangeQuantity applies delta to the matching line; a resulting quantity of
// zero or below removes the line. Unknown product ids are a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	s.lines[idx].Quantity += delta
	if s.lines[idx].Quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	}

	return s.persistLocked(ctx)
}

// Snapshot returns the current lines with totals derived on the spot.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)

	totalItems := 0
	totalPrice := decimal.Zero
	for _, line := range lines {
		totalItems += line.Quantity
		totalPrice = totalPrice.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return Cart{Lines: lines, TotalItems: totalItems, TotalPrice: totalPrice}
}
