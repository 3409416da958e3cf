package room

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// TestConcurrentVetoes verifies that simultaneous vetoes from different
// participants are never lost and never deadlock readers of the same room.
func TestConcurrentVetoes(t *testing.T) {
	const n = 50

	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "option-%d\n", i)
	}
	rm := testRoom(t, sb.String())
	ids := make([]string, 0, n)
	for _, o := range rm.Snapshot().Options {
		ids = append(ids, o.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			rm.Veto(id)
		}(id)
	}
	// Concurrent readers on the same room must not block the writers.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rm.Snapshot()
				rm.Tally()
			}
		}()
	}
	wg.Wait()

	for _, o := range rm.Snapshot().Options {
		if !o.Vetoed {
			t.Errorf("lost veto for %q", o.Text)
		}
	}
}

// TestConcurrentBallots verifies no ballot submission is lost under
// contention.
func TestConcurrentBallots(t *testing.T) {
	const n = 50

	rm := testRoom(t, "A\nB\nC")
	rm.FinishVetoing()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rm.ContributeBallot("")
		}()
	}
	wg.Wait()

	if got := len(rm.Snapshot().Ballots); got != n {
		t.Errorf("expected %d ballots, got %d", n, got)
	}
}

// TestConcurrentRegistry hammers create and lookup together; creation of
// one room must not corrupt lookups of others.
func TestConcurrentRegistry(t *testing.T) {
	reg := NewRegistry()
	seed, err := reg.Create("a")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	codes := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rm, err := reg.Create("x\ny")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			codes <- rm.Code()
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Get(seed.Code()); err != nil {
				t.Errorf("lookup during create: %v", err)
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool)
	for code := range codes {
		if seen[code] {
			t.Errorf("duplicate code %q under concurrency", code)
		}
		seen[code] = true
	}
}
