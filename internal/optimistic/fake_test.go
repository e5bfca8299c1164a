package optimistic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type item struct {
	ID    int64
	Scope int64
	Name  string
	Unit  string
	Cost  int
	Stock int
}

func (i item) Key() int64 { return i.ID }

type itemDraft struct {
	Name  string
	Unit  string
	Cost  int
	Stock int
}

func (d itemDraft) Validate() error {
	if d.Name == "" {
		return errors.New("название обязательно")
	}
	return nil
}

func (d itemDraft) Build(scope int64) item {
	return item{Scope: scope, Name: d.Name, Unit: d.Unit, Cost: d.Cost, Stock: d.Stock}
}

type itemPatch struct{ Cost *int }

func (p itemPatch) Validate() error {
	if p.Cost == nil {
		return errors.New("нет изменений")
	}
	return nil
}

func (p itemPatch) Apply(i item) item {
	i.Cost = *p.Cost
	return i
}

func cost(v int) itemPatch { return itemPatch{Cost: &v} }

// fakeGateway — шлюз с подменяемыми методами. По умолчанию create выдаёт id по порядку.
type fakeGateway struct {
	mu     sync.Mutex
	calls  map[string]int
	nextID atomic.Int64

	list   func(ctx context.Context, scopeID int64) ([]item, error)
	create func(ctx context.Context, scopeID int64, d itemDraft) (item, error)
	update func(ctx context.Context, id int64, p itemPatch) (item, error)
	del    func(ctx context.Context, id int64) error
}

func newFakeGateway() *fakeGateway {
	g := &fakeGateway{calls: map[string]int{}}
	g.nextID.Store(100)
	return g
}

func (g *fakeGateway) count(op string) {
	g.mu.Lock()
	g.calls[op]++
	g.mu.Unlock()
}

func (g *fakeGateway) called(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

func (g *fakeGateway) List(ctx context.Context, scopeID int64) ([]item, error) {
	g.count("list")
	if g.list == nil {
		return nil, nil
	}
	return g.list(ctx, scopeID)
}

func (g *fakeGateway) Create(ctx context.Context, scopeID int64, d itemDraft) (item, error) {
	g.count("create")
	if g.create == nil {
		it := d.Build(scopeID)
		it.ID = g.nextID.Add(1)
		return it, nil
	}
	return g.create(ctx, scopeID, d)
}

func (g *fakeGateway) Update(ctx context.Context, id int64, p itemPatch) (item, error) {
	g.count("update")
	if g.update == nil {
		return item{}, errors.New("update not configured")
	}
	return g.update(ctx, id, p)
}

func (g *fakeGateway) Delete(ctx context.Context, id int64) error {
	g.count("delete")
	if g.del == nil {
		return nil
	}
	return g.del(ctx, id)
}

// gate задерживает вызов шлюза, пока тест не откроет release.
type gate struct {
	entered chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}, 64), release: make(chan struct{})}
}

func (g *gate) wait() {
	g.entered <- struct{}{}
	<-g.release
}

func (g *gate) open() { close(g.release) }

func (g *gate) awaitEntered(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-g.entered:
		case <-time.After(2 * time.Second):
			t.Fatalf("gateway call %d of %d did not start", i+1, n)
		}
	}
}

type recorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *recorder) Operation(store, op, outcome string) {
	r.mu.Lock()
	r.ops = append(r.ops, store+"/"+op+"/"+outcome)
	r.mu.Unlock()
}

func (r *recorder) Size(string, int, int) {}

func newItemStore(gw *fakeGateway, opts Options) *Store[item, itemDraft, itemPatch] {
	if opts.Noun == "" {
		opts.Noun = "Товар"
	}
	return New[item, itemDraft, itemPatch]("items", gw, opts)
}

func listOf(items ...item) func(context.Context, int64) ([]item, error) {
	return func(context.Context, int64) ([]item, error) {
		return append([]item(nil), items...), nil
	}
}
