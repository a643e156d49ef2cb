package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/filter"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// ListProducts resolves the displayed product subset for the request's
// selector. A search term wins over a category parameter, mirroring the
// storefront's search-overrides-category rule.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snap := svc.Current()
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded"))
			return
		}

		selector := selectorFromQuery(r)
		products := filter.Resolve(snap, selector)

		responses.WriteSuccess(w, map[string]any{
			"products": products,
			"count":    len(products),
		})
	}
}

// ListCategories returns the derived category facets, wildcard first.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snap := svc.Current()
		if snap == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"categories": snap.Categories})
	}
}

func selectorFromQuery(r *http.Request) filter.Selector {
	query := r.URL.Query()
	if term := query.Get("q"); term != "" {
		return filter.BySearchTerm(term)
	}
	if category := query.Get("category"); category != "" {
		return filter.ByCategory(category)
	}
	return filter.AllCategories()
}
