package cart

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/arjunpatwa/qrmenu-backend/pkg/db/models"
	"github.com/arjunpatwa/qrmenu-backend/pkg/logger"
)

type stubRestaurantLoader struct {
	restaurant *models.Restaurant
	err        error
}

func (s *stubRestaurantLoader) GetBySlug(context.Context, string) (*models.Restaurant, error) {
	return s.restaurant, s.err
}

func newTestService(t *testing.T, storage Storage, loader restaurantLoader) *service {
	t.Helper()
	if loader == nil {
		loader = &stubRestaurantLoader{}
	}
	logg := logger.New(logger.Options{ServiceName: "qrmenu-test", Output: io.Discard})
	svc, err := NewService(storage, loader, logg, time.Hour)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func TestServiceAddPersistsSnapshot(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if c.Count() != 1 {
		t.Fatalf("expected one item, got %d", c.Count())
	}

	loaded, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.RestaurantSlug() != "udupi-grand" || loaded.Count() != 1 {
		t.Fatalf("snapshot did not survive reload: %+v", loaded.Items())
	}
}

func TestServiceDeclinedSwitchLeavesSnapshot(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	other := dosaInput()
	other.ID = "dish-9"
	other.Slug = "biryani-house"
	if _, err := svc.AddItem(ctx, "sess-1", other, RejectSwitch); !errors.Is(err, ErrRestaurantConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	loaded, _ := svc.Get(ctx, "sess-1")
	if loaded.RestaurantSlug() != "udupi-grand" {
		t.Fatalf("declined switch must not touch stored cart, got slug %q", loaded.RestaurantSlug())
	}
}

func TestServiceRemoveLastItemDeletesSnapshot(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "sess-1", "dish-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := storage.Get(ctx, "sess-1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected snapshot deleted for empty cart, got %v", err)
	}
}

func TestServiceClearDeletesImmediately(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}
	if err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := storage.Get(ctx, "sess-1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected snapshot gone, got %v", err)
	}
}

func TestServiceExpiredSnapshotDroppedOnLoad(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	// Jump the clock past the sliding window.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	loaded, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !loaded.Empty() {
		t.Fatalf("expired snapshot must load as empty cart, got %+v", loaded.Items())
	}
	if _, err := storage.Get(ctx, "sess-1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected expired snapshot deleted, got %v", err)
	}
}

func TestServiceSaveRefreshesWindow(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }
	if _, err := svc.AddItem(ctx, "sess-1", dosaInput(), nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	// A mutation 50 minutes in refreshes the last-modified stamp,
	// so the cart is still alive 50 minutes after that.
	svc.now = func() time.Time { return base.Add(50 * time.Minute) }
	if _, err := svc.UpdateQuantity(ctx, "sess-1", "dish-1", 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	svc.now = func() time.Time { return base.Add(100 * time.Minute) }
	loaded, _ := svc.Get(ctx, "sess-1")
	if loaded.Empty() || loaded.Items()[0].Quantity != 3 {
		t.Fatalf("sliding window should keep the cart alive, got %+v", loaded.Items())
	}
}

func TestServiceCorruptSnapshotLoadsEmpty(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	svc := newTestService(t, storage, nil)
	ctx := context.Background()

	if err := storage.Set(ctx, "sess-1", []byte(`{"cart":`), time.Hour); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	loaded, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !loaded.Empty() {
		t.Fatalf("corrupt snapshot must load as empty cart, got %+v", loaded.Items())
	}
}

func TestServiceSummaryUsesRestaurantRates(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	loader := &stubRestaurantLoader{restaurant: &models.Restaurant{
		Slug:      "udupi-grand",
		CGSTBps:   900,
		SGSTBps:   900,
		HideTotal: true,
	}}
	svc := newTestService(t, storage, loader)
	ctx := context.Background()

	input := dosaInput()
	input.Price = 100
	if _, err := svc.AddItem(ctx, "sess-1", input, nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	view, err := svc.Summary(ctx, "sess-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if view.Totals.CGST != 9 || view.Totals.SGST != 9 || view.Totals.GrandTotal != 118 {
		t.Fatalf("expected profile rates applied, got %+v", view.Totals)
	}
	if !view.HideTotal {
		t.Fatal("expected hide_total flag from the profile")
	}
}

func TestServiceSummaryFallsBackOnLoaderError(t *testing.T) {
	t.Parallel()

	storage := NewMemoryStorage()
	loader := &stubRestaurantLoader{err: errors.New("db down")}
	svc := newTestService(t, storage, loader)
	ctx := context.Background()

	input := dosaInput()
	input.Price = 400
	if _, err := svc.AddItem(ctx, "sess-1", input, nil); err != nil {
		t.Fatalf("seed add failed: %v", err)
	}

	view, err := svc.Summary(ctx, "sess-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if view.Totals.CGST != 10 || view.Totals.SGST != 10 {
		t.Fatalf("expected default 2.5%%+2.5%% split, got %+v", view.Totals)
	}
}
