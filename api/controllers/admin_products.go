package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type createProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Price    string  `json:"price" validate:"required"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

type updateProductRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Price    *string `json:"price,omitempty"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// AdminCreateProduct stores a new catalog product. The snapshot served to
// shoppers is unchanged until the catalog is reloaded.
func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := parsePrice(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Name:     validators.SanitizeString(payload.Name, 200),
			Category: validators.SanitizeString(payload.Category, 100),
			Price:    price,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"product_id": product.ID,
				"admin_uid":  middleware.AdminUIDFromContext(r.Context()),
			})
			logg.Info(ctx, "product created")
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminUpdateProduct applies a partial update to an existing product document.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			ImageURL: payload.ImageURL,
		}
		if payload.Name != nil {
			name := validators.SanitizeString(*payload.Name, 200)
			input.Name = &name
		}
		if payload.Category != nil {
			category := validators.SanitizeString(*payload.Category, 100)
			input.Category = &category
		}
		if payload.Price != nil {
			price, err := parsePrice(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Price = &price
		}

		if err := svc.UpdateProduct(r.Context(), productID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": productID, "status": "updated"})
	}
}

// AdminDeleteProduct removes a product document.
func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": productID, "status": "deleted"})
	}
}

// AdminReloadCatalog refetches the product set and swaps the served snapshot.
func AdminReloadCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snap, err := svc.Load(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "products", len(snap.Products)), "catalog reloaded")
		}
		responses.WriteSuccess(w, map[string]any{
			"products":   len(snap.Products),
			"categories": len(snap.Categories),
		})
	}
}

// parsePrice converts a decimal string payload into a non-negative amount.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	return price, nil
}
