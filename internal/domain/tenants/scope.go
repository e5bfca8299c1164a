package tenants

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/empresa-pos/internal/optimistic"
)

var ErrUnknownTenant = errors.New("tenants: tenant is not in the list")

type Lister interface {
	ListTenants(ctx context.Context) ([]Tenant, error)
}

// Dependent — хранилище, привязанное к выбранной компании.
// Refresh загружает данные, только если хранилище всё ещё привязано к scopeID.
type Dependent interface {
	Reset(scopeID int64)
	Refresh(ctx context.Context, scopeID int64) optimistic.Outcome
}

// Scope держит выбранную компанию и при смене перезагружает зависимые хранилища.
// Передаётся хранилищам и экранам явно.
type Scope struct {
	lister Lister
	log    *slog.Logger

	// switchMu упорядочивает смены компании: выбор и очистка хранилищ идут одним шагом.
	switchMu sync.Mutex

	mu       sync.Mutex
	selected *Tenant
	list     []Tenant
	loading  bool
	deps     []Dependent
}

func NewScope(lister Lister, log *slog.Logger) *Scope {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scope{lister: lister, log: log}
}

// Attach добавляет зависимые хранилища. Если компания уже выбрана, они не перезагружаются.
func (s *Scope) Attach(deps ...Dependent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deps = append(s.deps, deps...)
}

func (s *Scope) Selected() (Tenant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return Tenant{}, false
	}
	return *s.selected, true
}

// SelectedID возвращает 0, если компания не выбрана.
func (s *Scope) SelectedID() int64 {
	t, ok := s.Selected()
	if !ok {
		return 0
	}
	return t.ID
}

func (s *Scope) Tenants() []Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tenant(nil), s.list...)
}

func (s *Scope) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Init загружает список компаний и, если ничего не выбрано, выбирает первую по порядку сервера.
func (s *Scope) Init(ctx context.Context) (*Reload, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	list, err := s.lister.ListTenants(ctx)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.mu.Unlock()
		s.log.Error("tenant list failed", "err", err)
		return nil, err
	}
	s.list = list
	first := s.selected == nil && len(list) > 0
	s.mu.Unlock()
	s.log.Info("tenants loaded", "count", len(list))

	if !first {
		return done(), nil
	}
	return s.SelectTenant(ctx, list[0].ID)
}

// SelectTenant выбирает компанию id. При смене все зависимые хранилища синхронно
// очищаются, затем асинхронно перезагружаются; Reload.Wait ждёт окончания загрузок.
func (s *Scope) SelectTenant(ctx context.Context, id int64) (*Reload, error) {
	s.switchMu.Lock()
	defer s.switchMu.Unlock()

	s.mu.Lock()
	var next *Tenant
	for i := range s.list {
		if s.list[i].ID == id {
			t := s.list[i]
			next = &t
			break
		}
	}
	if next == nil {
		s.mu.Unlock()
		return nil, ErrUnknownTenant
	}
	if s.selected != nil && s.selected.ID == id {
		s.mu.Unlock()
		return done(), nil
	}
	s.selected = next
	deps := append([]Dependent(nil), s.deps...)
	s.mu.Unlock()

	s.log.Info("tenant selected", "tenant_id", id, "name", next.Name, "stores", len(deps))

	for _, d := range deps {
		d.Reset(id)
	}
	r := &Reload{}
	for _, d := range deps {
		r.g.Go(func() error {
			if o := d.Refresh(ctx, id); !o.Success {
				return o.Err
			}
			return nil
		})
	}
	return r, nil
}

// Reload — перезагрузка зависимых хранилищ после смены компании.
type Reload struct {
	g errgroup.Group
}

func done() *Reload { return &Reload{} }

// Wait возвращает первую ошибку загрузки.
func (r *Reload) Wait() error { return r.g.Wait() }
