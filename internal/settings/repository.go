package settings

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	pkgfirestore "github.com/angelmondragon/storefront-backend/pkg/firestore"
)

// settingsDocument mirrors the Firestore settings record maintained by the
// admin panel.
type settingsDocument struct {
	ContactPhone string `firestore:"contactPhone"`
	LogoURL      string `firestore:"logoUrl"`
}

// Repository reads and upserts the single merchant settings document.
type Repository struct {
	client     *pkgfirestore.Client
	collection string
	docID      string
}

// NewRepository builds a Firestore-backed settings repository.
func NewRepository(client *pkgfirestore.Client, collection, docID string) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client required")
	}
	if strings.TrimSpace(collection) == "" || strings.TrimSpace(docID) == "" {
		return nil, fmt.Errorf("settings collection and doc id required")
	}
	return &Repository{client: client, collection: collection, docID: docID}, nil
}

// GetSettings fetches the settings document. An absent document is not an
// error; it yields zero-value settings.
func (r *Repository) GetSettings(ctx context.Context) (Settings, error) {
	doc, err := r.client.Collection(r.collection).Doc(r.docID).Get(ctx)
	if err != nil {
		if pkgfirestore.IsNotFound(err) {
			return Settings{}, nil
		}
		return Settings{}, pkgfirestore.MapError("settings.get", err)
	}

	var record settingsDocument
	if err := doc.DataTo(&record); err != nil {
		return Settings{}, pkgfirestore.MapError("settings.decode", err)
	}

	loaded := Settings{ContactPhone: record.ContactPhone}
	if record.LogoURL != "" {
		logo := record.LogoURL
		loaded.LogoURL = &logo
	}
	return loaded, nil
}

// UpsertInput carries the admin-editable settings fields.
type UpsertInput struct {
	ContactPhone *string
	LogoURL      *string
}

// Upsert merges the provided fields into the settings document; fields left
// nil stay untouched.
func (r *Repository) Upsert(ctx context.Context, input UpsertInput) error {
	fields := map[string]any{}
	if input.ContactPhone != nil {
		fields["contactPhone"] = *input.ContactPhone
	}
	if input.LogoURL != nil {
		fields["logoUrl"] = *input.LogoURL
	}
	if len(fields) == 0 {
		return nil
	}

	if _, err := r.client.Collection(r.collection).Doc(r.docID).Set(ctx, fields, firestore.MergeAll); err != nil {
		return pkgfirestore.MapError("settings.upsert", err)
	}
	return nil
}
