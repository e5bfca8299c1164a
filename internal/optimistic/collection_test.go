package optimistic

import (
	"sync"
	"testing"
)

func keys(c *collection[string]) []Identity {
	var out []Identity
	for _, r := range c.records() {
		out = append(out, r.Identity)
	}
	return out
}

func TestCollection_PrependAndDedupe(t *testing.T) {
	c := newCollection[string]()
	c.append(Confirmed(1), "a")
	c.prepend(Provisional(-5), "tmp")
	c.append(Confirmed(1), "a2")

	got := keys(c)
	if len(got) != 2 || got[0] != Provisional(-5) || got[1] != Confirmed(1) {
		t.Fatalf("order = %v", got)
	}
	if v, _ := c.get(Confirmed(1)); v != "a2" {
		t.Errorf("value = %q", v)
	}
}

func TestCollection_SwapRemovesDuplicate(t *testing.T) {
	c := newCollection[string]()
	c.prepend(Provisional(-5), "tmp")
	c.append(Confirmed(1), "a")
	c.append(Confirmed(42), "stale")

	if !c.swap(Provisional(-5), Confirmed(42), "fresh") {
		t.Fatal("swap failed")
	}
	got := keys(c)
	if len(got) != 2 || got[0] != Confirmed(42) || got[1] != Confirmed(1) {
		t.Fatalf("order = %v", got)
	}
	if v, _ := c.get(Confirmed(42)); v != "fresh" {
		t.Errorf("value = %q", v)
	}
	if c.swap(Provisional(-5), Confirmed(7), "x") {
		t.Error("swap of a missing identity must report false")
	}
}

func TestCollection_Remove(t *testing.T) {
	c := newCollection[string]()
	c.append(Confirmed(1), "a")
	c.append(Confirmed(2), "b")
	if !c.remove(Confirmed(1)) || c.remove(Confirmed(1)) {
		t.Fatal("remove must succeed once")
	}
	if c.len() != 1 || keys(c)[0] != Confirmed(2) {
		t.Fatalf("left = %v", keys(c))
	}
	if c.set(Confirmed(1), "x") {
		t.Error("set must not insert")
	}
}

func TestIDAllocator_NegativeAndUnique(t *testing.T) {
	a := NewIDAllocator()
	prev := a.Allocate()
	if prev >= 0 {
		t.Fatalf("temporary id must be negative, got %d", prev)
	}
	next := a.Allocate()
	if next >= prev {
		t.Fatalf("ids must decrease: %d then %d", prev, next)
	}

	const n = 1000
	var (
		mu   sync.Mutex
		seen = make(map[TempID]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := a.Allocate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != n {
		t.Fatalf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestIdentity_String(t *testing.T) {
	if Confirmed(42).String() != "42" || Provisional(-3).String() != "pending:-3" {
		t.Fatal("unexpected identity formatting")
	}
}
