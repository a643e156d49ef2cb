package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	pkgfirestore "github.com/angelmondragon/storefront-backend/pkg/firestore"
)

// productDocument mirrors the Firestore product record written by the admin
// panel. Field names follow the document store's camelCase convention.
type productDocument struct {
	Name     string  `firestore:"name"`
	Category string  `firestore:"category"`
	Price    float64 `firestore:"price"`
	ImageURL string  `firestore:"imageUrl"`
}

// Repository reads and writes product documents.
type Repository struct {
	client     *pkgfirestore.Client
	collection string
}

// NewRepository builds a Firestore-backed product repository.
func NewRepository(client *pkgfirestore.Client, collection string) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client required")
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("products collection required")
	}
	return &Repository{client: client, collection: collection}, nil
}

// ListProducts returns every product ordered by category then name for a
// stable default presentation.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := r.client.Collection(r.collection).
		OrderBy("category", firestore.Asc).
		OrderBy("name", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []Product
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pkgfirestore.MapError("products.list", err)
		}

		var record productDocument
		if err := doc.DataTo(&record); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "products.decode")
		}
		products = append(products, productFromDocument(doc.Ref.ID, record))
	}
	return products, nil
}

// CreateProductInput holds the validated payload for a new product.
type CreateProductInput struct {
	Name     string
	Category string
	Price    decimal.Decimal
	ImageURL *string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	ImageURL *string
}

// CreateProduct stores a new product document under a freshly minted id.
func (r *Repository) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	id := uuid.NewString()
	record := productDocument{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price.InexactFloat64(),
	}
	if input.ImageURL != nil {
		record.ImageURL = *input.ImageURL
	}

	if _, err := r.client.Collection(r.collection).Doc(id).Create(ctx, record); err != nil {
		return nil, pkgfirestore.MapError("products.create", err)
	}

	product := productFromDocument(id, record)
	return &product, nil
}

// UpdateProduct applies the provided fields to an existing document.
func (r *Repository) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) error {
	var updates []firestore.Update
	if input.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *input.Name})
	}
	if input.Category != nil {
		updates = append(updates, firestore.Update{Path: "category", Value: *input.Category})
	}
	if input.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: input.Price.InexactFloat64()})
	}
	if input.ImageURL != nil {
		updates = append(updates, firestore.Update{Path: "imageUrl", Value: *input.ImageURL})
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := r.client.Collection(r.collection).Doc(id).Update(ctx, updates); err != nil {
		return pkgfirestore.MapError("products.update", err)
	}
	return nil
}

// DeleteProduct removes the product document.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	if _, err := r.client.Collection(r.collection).Doc(id).Delete(ctx); err != nil {
		return pkgfirestore.MapError("products.delete", err)
	}
	return nil
}

func productFromDocument(id string, record productDocument) Product {
	product := Product{
		ID:       id,
		Name:     record.Name,
		Category: record.Category,
		Price:    decimal.NewFromFloat(record.Price),
	}
	if record.ImageURL != "" {
		image := record.ImageURL
		product.ImageURL = &image
	}
	return product
}
