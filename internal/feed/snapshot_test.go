package feed

import (
	"testing"
	"time"
)

func TestStorePutAndGet(t *testing.T) {
	store := NewStore(0)

	store.Put("alpha", 2, []string{"a", "b"})

	snap, ok := store.Get("alpha")
	if !ok {
		t.Fatal("Get() returned no snapshot")
	}
	if snap.Source != "alpha" || snap.Items != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(0)
	if _, ok := store.Get("nope"); ok {
		t.Error("Get() on an empty store reported a snapshot")
	}
}

func TestStoreOverwrite(t *testing.T) {
	store := NewStore(0)
	store.Put("alpha", 1, nil)
	store.Put("alpha", 5, nil)

	snap, _ := store.Get("alpha")
	if snap.Items != 5 {
		t.Errorf("Items = %d, want the latest snapshot", snap.Items)
	}
}

func TestStoreAllSorted(t *testing.T) {
	store := NewStore(0)
	store.Put("zeta", 1, nil)
	store.Put("alpha", 1, nil)
	store.Put("mid", 1, nil)

	all := store.All()
	if len(all) != 3 {
		t.Fatalf("len(All()) = %d, want 3", len(all))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if all[i].Source != want {
			t.Errorf("All()[%d].Source = %q, want %q", i, all[i].Source, want)
		}
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	store := NewStore(30 * time.Millisecond)
	store.Put("alpha", 1, nil)

	time.Sleep(60 * time.Millisecond)

	if _, ok := store.Get("alpha"); ok {
		t.Error("snapshot survived past its TTL")
	}
}
