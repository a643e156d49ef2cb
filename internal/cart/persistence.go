package cart

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const persistedSchemaVersion = 1

// persistedCart is the explicit, versioned durable schema. Prices travel as
// decimal strings to stay minor-unit safe.
type persistedCart struct {
	SchemaVersion int             `json:"schema_version"`
	Lines         []persistedLine `json:"lines"`
}

type persistedLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     string  `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Restore seeds the in-memory cart from the durable store. Called once at
// startup. An absent key or a payload that fails validation yields an empty
// cart; only a transport failure is surfaced.
func (s *Store) Restore(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if redis.IsMissing(err) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore cart")
	}

	lines, err := decodePersistedCart(raw)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "persisted cart invalid, starting empty")
		}
		return nil
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	record := persistedCart{
		SchemaVersion: persistedSchemaVersion,
		Lines:         make([]persistedLine, 0, len(s.lines)),
	}
	for _, line := range s.lines {
		record.Lines = append(record.Lines, persistedLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price.String(),
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
		})
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func decodePersistedCart(raw string) ([]Line, error) {
	var record persistedCart
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode cart")
	}
	if record.SchemaVersion != persistedSchemaVersion {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported cart schema version")
	}

	lines := make([]Line, 0, len(record.Lines))
	seen := make(map[string]struct{}, len(record.Lines))
	for _, entry := range record.Lines {
		if entry.ProductID == "" || entry.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart line")
		}
		if _, dup := seen[entry.ProductID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate cart line")
		}
		seen[entry.ProductID] = struct{}{}

		price, err := decimal.NewFromString(entry.Price)
		if err != nil || price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart line price")
		}

		lines = append(lines, Line{
			ProductID: entry.ProductID,
			Name:      entry.Name,
			Price:     price,
			ImageURL:  entry.ImageURL,
			Quantity:  entry.Quantity,
		})
	}
	return lines, nil
}
