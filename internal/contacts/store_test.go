package contacts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/truthguard/truthguard/pkg/logging"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, nil, logging.New("error")), mr
}

func TestAddListDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Distinct millisecond ids for deterministic ordering.
	base := time.UnixMilli(1700000000000)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}

	mom, err := store.Add(ctx, "Mom", "+1 (555) 010-2030")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	police, err := store.Add(ctx, "Police", "100")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	all := store.All(ctx)
	if len(all) != 2 || all[0].ID != mom.ID || all[1].ID != police.ID {
		t.Fatalf("unexpected contacts: %+v", all)
	}

	if err := store.Delete(ctx, mom.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all = store.All(ctx)
	if len(all) != 1 || all[0].Name != "Police" {
		t.Fatalf("unexpected contacts after delete: %+v", all)
	}
}

func TestAddRejectsBlankFields(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "  ", "123"); !errors.Is(err, ErrInvalidContact) {
		t.Errorf("blank name: got %v", err)
	}
	if _, err := store.Add(ctx, "Mom", ""); !errors.Is(err, ErrInvalidContact) {
		t.Errorf("blank phone: got %v", err)
	}
}

func TestCorruptRecordDegradesToEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set("truthguard:contacts", "not-json")

	if got := store.All(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

type fixedGeo struct {
	lat, lng float64
	err      error
}

func (g fixedGeo) Current(context.Context) (float64, float64, error) {
	return g.lat, g.lng, g.err
}

func TestShareLocationLink(t *testing.T) {
	link, err := ShareLocationLink(context.Background(), fixedGeo{lat: 12.97, lng: 77.59}, Contact{Phone: "+91 98765-43210"})
	if err != nil {
		t.Fatalf("share: %v", err)
	}

	want := "https://wa.me/919876543210?text="
	if len(link) <= len(want) || link[:len(want)] != want {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	// The maps pin must be embedded, URL-encoded.
	if !strings.Contains(link, "google.com%2Fmaps%3Fq%3D12.97%2C77.59") {
		t.Errorf("maps pin missing or unencoded: %s", link)
	}
}

func TestShareLocationLinkGeolocationDenied(t *testing.T) {
	_, err := ShareLocationLink(context.Background(), fixedGeo{err: errors.New("permission denied")}, Contact{Phone: "100"})
	if err == nil {
		t.Fatal("expected error when geolocation fails")
	}
}
