package cart

import (
	"context"
	"fmt"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
)

type fakeKV struct {
	data   map[string]string
	getErr error
	setErr error
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value
	return nil
}

type fakeIndex struct {
	snap *catalog.Snapshot
}

func (f fakeIndex) Current() *catalog.Snapshot {
	return f.snap
}

func testIndex() fakeIndex {
	image := "https://cdn.example.com/hammer.png"
	return fakeIndex{snap: &catalog.Snapshot{Products: []catalog.Product{
		{ID: "p-1", Name: "Hammer", Category: "Tools", Price: decimal.NewFromFloat(19.90), ImageURL: &image},
		{ID: "p-2", Name: "Hose", Category: "Garden", Price: decimal.NewFromFloat(30.00)},
	}}}
}

const testKey = "storefront:cart:test"

func newTestStore(t *testing.T, kv *fakeKV) *Store {
	t.Helper()
	store, err := NewStore(kv, testKey, testIndex(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestNewStoreValidatesDependencies(t *testing.T) {
	if _, err := NewStore(nil, testKey, testIndex(), nil); err == nil {
		t.Fatalf("expected error for nil kv store")
	}
	if _, err := NewStore(&fakeKV{}, "", testIndex(), nil); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := NewStore(&fakeKV{}, testKey, nil, nil); err == nil {
		t.Fatalf("expected error for nil index")
	}
}

func TestAddItemInsertsThenIncrements(t *testing.T) {
	kv := &fakeKV{data: map[string]string{}}
	store := newTestStore(t, kv)

	if err := store.AddItem(context.Background(), "p-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(context.Background(), "p-1"); err != nil {
		t.Fatalf("add again: %v", err)
	}
	if err := store.AddItem(context.Background(), "p-2"); err != nil {
		t.Fatalf("add second product: %v", err)
	}

	current := store.Snapshot()
	if len(current.Lines) != 2 {
		t.Fatalf("expected 2 lines got %d", len(current.Lines))
	}
	if current.Lines[0].ProductID != "p-1" || current.Lines[0].Quantity != 2 {
		t.Fatalf("expected first line p-1 x2, got %+v", current.Lines[0])
	}
	if current.Lines[1].ProductID != "p-2" || current.Lines[1].Quantity != 1 {
		t.Fatalf("expected second line p-2 x1, got %+v", current.Lines[1])
	}
	if current.TotalItems != 3 {
		t.Fatalf("expected total items 3 got %d", current.TotalItems)
	}
	want := decimal.NewFromFloat(69.80)
	if !current.TotalPrice.Equal(want) {
		t.Fatalf("expected total %s got %s", want, current.TotalPrice)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newTestStore(t, &fakeKV{data: map[string]string{}})
	if err := store.AddItem(context.Background(), "ghost"); err == nil {
		t.Fatalf("expected not-found error for unknown product")
	}
	if current := store.Snapshot(); len(current.Lines) != 0 {
		t.Fatalf("failed add must not mutate the cart, got %+v", current.Lines)
	}
}

func TestChangeQuantityRemovesAtZero(t *testing.T) {
	store := newTestStore(t, &fakeKV{data: map[string]string{}})
	if err := store.AddItem(context.Background(), "p-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.ChangeQuantity(context.Background(), "p-1", 2); err != nil {
		t.Fatalf("increase: %v", err)
	}
	if got := store.Snapshot().Lines[0].Quantity; got != 3 {
		t.Fatalf("expected quantity 3 got %d", got)
	}

	if err := store.ChangeQuantity(context.Background(), "p-1", -3); err != nil {
		t.Fatalf("decrease: %v", err)
	}
	current := store.Snapshot()
	if len(current.Lines) != 0 || current.TotalItems != 0 {
		t.Fatalf("expected empty cart after dropping to zero, got %+v", current)
	}
	if !current.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("expected zero total got %s", current.TotalPrice)
	}
}

func TestChangeQuantityUnknownProductIsNoOp(t *testing.T) {
	kv := &fakeKV{data: map[string]string{}}
	store := newTestStore(t, kv)
	if err := store.ChangeQuantity(context.Background(), "ghost", 1); err != nil {
		t.Fatalf("unknown product delta must be a no-op, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Fatalf("no-op must not persist, got %v", kv.data)
	}
}

func TestPersistRestoreRoundTrip(t *testing.T) {
	kv := &fakeKV{data: map[string]string{}}
	store := newTestStore(t, kv)

	if err := store.AddItem(context.Background(), "p-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddItem(context.Background(), "p-2"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.ChangeQuantity(context.Background(), "p-2", 4); err != nil {
		t.Fatalf("change: %v", err)
	}

	restored := newTestStore(t, kv)
	if err := restored.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	before := store.Snapshot()
	after := restored.Snapshot()
	if len(after.Lines) != len(before.Lines) {
		t.Fatalf("expected %d lines got %d", len(before.Lines), len(after.Lines))
	}
	for i := range before.Lines {
		if after.Lines[i].ProductID != before.Lines[i].ProductID ||
			after.Lines[i].Quantity != before.Lines[i].Quantity ||
			!after.Lines[i].Price.Equal(before.Lines[i].Price) {
			t.Fatalf("line %d diverged: %+v vs %+v", i, after.Lines[i], before.Lines[i])
		}
	}
	if !after.TotalPrice.Equal(before.TotalPrice) {
		t.Fatalf("expected total %s got %s", before.TotalPrice, after.TotalPrice)
	}
}

func TestRestoreAbsentKeyStartsEmpty(t *testing.T) {
	store := newTestStore(t, &fakeKV{data: map[string]string{}})
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("absent key must not fail startup: %v", err)
	}
	current := store.Snapshot()
	if len(current.Lines) != 0 || current.TotalItems != 0 {
		t.Fatalf("expected empty cart for absent key, got %+v", current)
	}
}

func TestRestoreMalformedPayloadStartsEmpty(t *testing.T) {
	payloads := []string{
		"{not json",
		`{"schema_version":99,"lines":[]}`,
		`{"schema_version":1,"lines":[{"product_id":"","name":"x","price":"1","quantity":1}]}`,
		`{"schema_version":1,"lines":[{"product_id":"p-1","name":"x","price":"1","quantity":0}]}`,
		`{"schema_version":1,"lines":[{"product_id":"p-1","name":"x","price":"nope","quantity":1}]}`,
		`{"schema_version":1,"lines":[{"product_id":"p-1","name":"x","price":"1","quantity":1},{"product_id":"p-1","name":"x","price":"1","quantity":2}]}`,
	}

	for _, payload := range payloads {
		kv := &fakeKV{data: map[string]string{testKey: payload}}
		store := newTestStore(t, kv)
		if err := store.Restore(context.Background()); err != nil {
			t.Fatalf("malformed payload must not fail startup: %v", err)
		}
		if current := store.Snapshot(); len(current.Lines) != 0 {
			t.Fatalf("expected empty cart for payload %q, got %+v", payload, current.Lines)
		}
	}
}

func TestRestoreTransportFailureSurfaces(t *testing.T) {
	kv := &fakeKV{getErr: fmt.Errorf("connection refused")}
	store := newTestStore(t, kv)
	if err := store.Restore(context.Background()); err == nil {
		t.Fatalf("expected transport failure to surface")
	}
}

func TestTotalsNeverDriftFromLines(t *testing.T) {
	store := newTestStore(t, &fakeKV{data: map[string]string{}})
	for i := 0; i < 5; i++ {
		if err := store.AddItem(context.Background(), "p-1"); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	current := store.Snapshot()
	wantItems := 0
	wantPrice := decimal.Zero
	for _, line := range current.Lines {
		wantItems += line.Quantity
		wantPrice = wantPrice.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if current.TotalItems != wantItems || !current.TotalPrice.Equal(wantPrice) {
		t.Fatalf("totals diverged from lines: %+v", current)
	}
}
