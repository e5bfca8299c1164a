package filter

import (
	"sync"
	"testing"
)

type source struct {
	mu    sync.Mutex
	items []row
	subs  map[int]func()
	next  int
}

func newSource(items ...row) *source { return &source{items: items, subs: map[int]func(){}} }

func (s *source) Items() []row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]row(nil), s.items...)
}

func (s *source) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *source) set(items ...row) {
	s.mu.Lock()
	s.items = items
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func TestView_RecomputesOnPredicateChange(t *testing.T) {
	v := NewView[row](newSource(catalog...))
	defer v.Close()

	if v.Len() != len(catalog) {
		t.Fatalf("initial len = %d", v.Len())
	}
	v.SetName("scr")
	if v.Len() != 3 {
		t.Fatalf("after name len = %d", v.Len())
	}
	v.SetRange(Cost, "4", "10")
	if !equal(names(v.Items()), []string{"Screw M3", "Wood screw"}) {
		t.Fatalf("after range %v", names(v.Items()))
	}
	v.ClearRange(Cost)
	if v.Len() != 3 {
		t.Fatalf("after clear len = %d", v.Len())
	}
	if _, ok := v.Predicates().Ranges[Cost]; ok {
		t.Fatal("range must be cleared")
	}
}

func TestView_RecomputesOnSourceChange(t *testing.T) {
	src := newSource(catalog...)
	v := NewView[row](src)
	v.SetName("nail")

	var changes int
	v.OnChange(func() { changes++ })

	src.set(append(catalog, row{name: "Nail long", cost: "2"})...)
	if v.Len() != 2 || changes != 1 {
		t.Fatalf("len=%d changes=%d", v.Len(), changes)
	}

	v.Close()
	src.set()
	if v.Len() != 2 {
		t.Fatal("closed view must not follow the source")
	}
}

func TestView_SetPredicatesCopies(t *testing.T) {
	v := NewView[row](newSource(catalog...))
	p := Predicates{}.With(Cost, "", "5")
	v.SetPredicates(p)
	p.Ranges[Cost] = Range{From: "100"}
	if v.Len() != 3 {
		t.Fatalf("outside mutation leaked into view, len = %d", v.Len())
	}
}
