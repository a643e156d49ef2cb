package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/settings"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalogService struct {
	snap *catalog.Snapshot
}

func (s stubCatalogService) Load(ctx context.Context) (*catalog.Snapshot, error) {
	return s.snap, nil
}

func (s stubCatalogService) Current() *catalog.Snapshot {
	return s.snap
}

func (s stubCatalogService) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.Product, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s stubCatalogService) UpdateProduct(ctx context.Context, id string, input catalog.UpdateProductInput) error {
	return fmt.Errorf("not implemented")
}

func (s stubCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return fmt.Errorf("not implemented")
}

type stubSettingsService struct {
	current settings.Settings
}

func (s stubSettingsService) Load(ctx context.Context) (settings.Settings, error) {
	return s.current, nil
}

func (s stubSettingsService) Current() settings.Settings {
	return s.current
}

func (s stubSettingsService) Update(ctx context.Context, input settings.UpsertInput) (settings.Settings, error) {
	return s.current, nil
}

type stubVerifier struct {
	uid string
	err error
}

func (s stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &firebaseauth.Token{UID: s.uid}, nil
}

type stubKV struct{}

func (stubKV) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (stubKV) Set(ctx context.Context, key string, value string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
	}
}

func testSnapshot() *catalog.Snapshot {
	products := []catalog.Product{
		{ID: "p-1", Name: "Hammer", Category: "Tools", Price: decimal.NewFromFloat(19.90)},
		{ID: "p-2", Name: "Screwdriver", Category: "Tools", Price: decimal.NewFromFloat(9.50)},
	}
	return &catalog.Snapshot{
		Products:   products,
		Categories: []string{catalog.WildcardCategory, "Tools"},
	}
}

func newTestRouter(t *testing.T, verifier stubVerifier) http.Handler {
	t.Helper()
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	catalogSvc := stubCatalogService{snap: testSnapshot()}
	settingsSvc := stubSettingsService{current: settings.Settings{ContactPhone: "+5511999990000"}}

	store, err := cart.NewStore(stubKV{}, "storefront:cart:test", catalogSvc, logg)
	if err != nil {
		t.Fatalf("build cart store: %v", err)
	}

	formatter, err := checkout.NewFormatter(config.CheckoutConfig{
		MessageBaseURL: "https://api.whatsapp.com/send",
		Greeting:       "Hello! I would like to order:",
		CurrencyPrefix: "R$ ",
	})
	if err != nil {
		t.Fatalf("build formatter: %v", err)
	}

	return NewRouter(cfg, logg, stubPinger{}, stubPinger{}, verifier, catalogSvc, settingsSvc, store, formatter)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestPublicProductsServed(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=Tools", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for products got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Hammer") {
		t.Fatalf("expected product payload, got %s", resp.Body.String())
	}
}

func TestCartAddRejectsUnknownProduct(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product got %d", resp.Code)
	}
}

func TestCartZeroDeltaAccepted(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})

	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"p-1"}`))
	add.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for add got %d", resp.Code)
	}

	change := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/p-1/quantity", strings.NewReader(`{"delta":0}`))
	change.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, change)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for zero delta got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"quantity":1`) {
		t.Fatalf("zero delta must leave the line untouched, got %s", resp.Body.String())
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty cart got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingToken(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalog/reload", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRejectsInvalidToken(t *testing.T) {
	router := newTestRouter(t, stubVerifier{err: fmt.Errorf("token expired")})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalog/reload", nil)
	req.Header.Set("Authorization", "Bearer stale")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token got %d", resp.Code)
	}
}

func TestAdminReloadSucceedsWithToken(t *testing.T) {
	router := newTestRouter(t, stubVerifier{uid: "admin-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/catalog/reload", nil)
	req.Header.Set("Authorization", "Bearer fresh")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin reload got %d", resp.Code)
	}
}
