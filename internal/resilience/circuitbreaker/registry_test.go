package circuitbreaker

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	reg := NewRegistry()

	first, err := reg.GetOrCreate(DefaultConfig("UNHCR Displacement"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := reg.GetOrCreate(DefaultConfig("UNHCR Displacement"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Error("expected the same breaker instance for the same name")
	}

	other, err := reg.GetOrCreate(DefaultConfig("NWS Weather"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other == first {
		t.Error("different integrations must not share a breaker")
	}
}

func TestRegistry_GetOrCreate_MissingName(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.GetOrCreate(Config{}); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Get("missing"); ok {
		t.Error("expected miss for unregistered name")
	}

	cb, _ := reg.GetOrCreate(DefaultConfig("FRED Economic"))
	got, ok := reg.Get("FRED Economic")
	if !ok || got != cb {
		t.Error("expected registered breaker back")
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"OpenSky Aircraft", "FRED Economic", "NWS Weather"} {
		if _, err := reg.GetOrCreate(DefaultConfig(name)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	names := reg.Names()
	want := []string{"FRED Economic", "NWS Weather", "OpenSky Aircraft"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d]: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestRegistry_Statuses(t *testing.T) {
	reg := NewRegistry()
	healthy, _ := reg.GetOrCreate(DefaultConfig("Healthy Feed"))
	_ = healthy
	broken, _ := reg.GetOrCreate(Config{
		Name:             "Broken Feed",
		FailureThreshold: 1,
		Cooldown:         time.Minute,
	})
	Do(broken, func() (int, error) { return 0, errors.New("down") }, 0)

	statuses := reg.Statuses()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	// Sorted by name: Broken Feed first.
	if !strings.Contains(statuses[0], "Broken Feed") || !strings.Contains(statuses[0], "open") {
		t.Errorf("unexpected status for tripped breaker: %q", statuses[0])
	}
	if !strings.Contains(statuses[1], "Healthy Feed") || !strings.Contains(statuses[1], "closed") {
		t.Errorf("unexpected status for healthy breaker: %q", statuses[1])
	}
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	const goroutines = 16
	breakers := make([]*CircuitBreaker, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cb, err := reg.GetOrCreate(DefaultConfig("shared"))
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			breakers[i] = cb
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if breakers[i] != breakers[0] {
			t.Fatal("concurrent GetOrCreate returned distinct instances")
		}
	}
}
