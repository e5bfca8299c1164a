package filter

import "sync"

// Source — наблюдаемая коллекция (optimistic.Store).
type Source[E any] interface {
	Items() []E
	Subscribe(fn func()) (cancel func())
}

// View держит отфильтрованную выборку и пересчитывает её при изменении
// коллекции или любого предиката.
type View[E Filterable] struct {
	src    Source[E]
	cancel func()

	mu     sync.Mutex
	preds  Predicates
	result []E
	subs   []func()
}

func NewView[E Filterable](src Source[E]) *View[E] {
	v := &View[E]{src: src}
	v.recompute()
	v.cancel = src.Subscribe(v.recompute)
	return v
}

func (v *View[E]) recompute() {
	v.mu.Lock()
	v.result = Apply(v.src.Items(), v.preds)
	subs := append([]func(){}, v.subs...)
	v.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (v *View[E]) Items() []E {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]E(nil), v.result...)
}

func (v *View[E]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.result)
}

func (v *View[E]) Predicates() Predicates {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.preds.clone()
}

func (v *View[E]) SetName(name string) {
	v.update(func(p Predicates) Predicates {
		p.Name = name
		return p
	})
}

func (v *View[E]) SetRange(field Field, from, to string) {
	v.update(func(p Predicates) Predicates { return p.With(field, from, to) })
}

func (v *View[E]) ClearRange(field Field) {
	v.update(func(p Predicates) Predicates { return p.without(field) })
}

func (v *View[E]) SetPredicates(p Predicates) {
	v.update(func(Predicates) Predicates { return p.clone() })
}

// OnChange вызывается после каждого пересчёта.
func (v *View[E]) OnChange(fn func()) {
	v.mu.Lock()
	v.subs = append(v.subs, fn)
	v.mu.Unlock()
}

// Close отписывает View от коллекции.
func (v *View[E]) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *View[E]) update(fn func(Predicates) Predicates) {
	v.mu.Lock()
	v.preds = fn(v.preds)
	v.mu.Unlock()
	v.recompute()
}

func (p Predicates) clone() Predicates {
	out := Predicates{Name: p.Name, Ranges: make(map[Field]Range, len(p.Ranges))}
	for k, r := range p.Ranges {
		out.Ranges[k] = r
	}
	return out
}

func (p Predicates) without(field Field) Predicates {
	out := Predicates{Name: p.Name, Ranges: make(map[Field]Range, len(p.Ranges))}
	for k, r := range p.Ranges {
		if k != field {
			out.Ranges[k] = r
		}
	}
	return out
}
