// Package optimistic — хранилище коллекции сущностей с оптимистичными изменениями.
//
// Store сразу отражает create/update в локальной коллекции, затем вызывает
// удалённый шлюз и сводит запись к ответу сервера или откатывает её.
// Две одновременные операции над одним id не упорядочиваются: побеждает
// последний пришедший ответ. Блокировать повторное действие, пока операция
// по id не завершилась, обязан вызывающий код.
package optimistic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Spok95/empresa-pos/internal/gateway"
)

var ErrInvalid = errors.New("optimistic: invalid input")

// Entity — подтверждённая сервером сущность; Key возвращает её серверный id.
type Entity interface {
	Key() int64
}

// Draft — данные для создания. Build строит локальную запись для области scopeID.
type Draft[E any] interface {
	Validate() error
	Build(scopeID int64) E
}

// Patch — частичное изменение. Apply накладывает его на копию записи.
type Patch[E any] interface {
	Validate() error
	Apply(E) E
}

type Store[E Entity, D Draft[E], P Patch[E]] struct {
	name string
	gw   gateway.Gateway[E, D, P]
	opts Options
	log  *slog.Logger

	mu       sync.Mutex
	scopeID  int64
	items    *collection[E]
	pending  map[TempID]struct{}
	inflight int
	loadGen  uint64
	lastErr  error
	version  uint64
	subs     map[int]func()
	nextSub  int
}

func New[E Entity, D Draft[E], P Patch[E]](name string, gw gateway.Gateway[E, D, P], opts Options) *Store[E, D, P] {
	opts = opts.withDefaults(name)
	return &Store[E, D, P]{
		name:    name,
		gw:      gw,
		opts:    opts,
		log:     opts.Logger.With("store", name),
		items:   newCollection[E](),
		pending: make(map[TempID]struct{}),
		subs:    make(map[int]func()),
	}
}

func (s *Store[E, D, P]) Name() string { return s.name }

/* Снимки состояния */

func (s *Store[E, D, P]) ScopeID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scopeID
}

func (s *Store[E, D, P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.len()
}

// Records возвращает копию коллекции в текущем порядке.
func (s *Store[E, D, P]) Records() []Record[E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.records()
}

func (s *Store[E, D, P]) Items() []E {
	recs := s.Records()
	out := make([]E, len(recs))
	for i, r := range recs {
		out[i] = r.Value
	}
	return out
}

func (s *Store[E, D, P]) Get(id int64) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.get(Confirmed(id))
}

func (s *Store[E, D, P]) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Store[E, D, P]) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *Store[E, D, P]) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Version растёт при каждом изменении наблюдаемого состояния.
func (s *Store[E, D, P]) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe регистрирует fn, вызываемую после каждого изменения (вне блокировки).
func (s *Store[E, D, P]) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

/* Операции */

// Reset очищает коллекцию и переключает область. Синхронно, без сетевых вызовов.
func (s *Store[E, D, P]) Reset(scopeID int64) {
	s.mu.Lock()
	s.scopeID = scopeID
	s.items = newCollection[E]()
	clear(s.pending)
	s.lastErr = nil
	fns := s.commit()
	s.mu.Unlock()
	notify(fns)
}

// Load заменяет коллекцию списком из шлюза. scopeID == 0 — ничего не делаем.
// При смене области коллекция очищается сразу, до ответа шлюза.
// Если пока шёл запрос область сменилась, ответ отбрасывается.
func (s *Store[E, D, P]) Load(ctx context.Context, scopeID int64) Outcome {
	return s.load(ctx, scopeID, true)
}

// Refresh перезагружает коллекцию, только если область хранилища всё ещё scopeID.
// Проверка и начало загрузки идут под одной блокировкой, поэтому Reset на другую
// область, сделанный раньше, не перебивается.
func (s *Store[E, D, P]) Refresh(ctx context.Context, scopeID int64) Outcome {
	return s.load(ctx, scopeID, false)
}

func (s *Store[E, D, P]) load(ctx context.Context, scopeID int64, switchScope bool) Outcome {
	if scopeID == 0 {
		return Outcome{Success: true}
	}

	s.mu.Lock()
	if s.scopeID != scopeID {
		if !switchScope {
			current := s.scopeID
			s.mu.Unlock()
			s.log.Debug("refresh skipped", "scope", scopeID, "current", current)
			s.opts.Metrics.Operation(s.name, "load", "stale")
			return Outcome{Success: true}
		}
		s.scopeID = scopeID
		s.items = newCollection[E]()
		clear(s.pending)
		s.lastErr = nil
	}
	s.inflight++
	s.loadGen++
	gen := s.loadGen
	fns := s.commit()
	s.mu.Unlock()
	notify(fns)

	list, err := s.gw.List(ctx, scopeID)

	s.mu.Lock()
	s.inflight--
	// ответ для другой области не применяется никогда, для той же — по флагу
	if s.scopeID != scopeID || (s.opts.DiscardStaleLoads && gen != s.loadGen) {
		fns = s.commit()
		s.mu.Unlock()
		notify(fns)
		s.log.Debug("stale load discarded", "scope", scopeID, "gen", gen)
		s.opts.Metrics.Operation(s.name, "load", "stale")
		return Outcome{Success: true}
	}
	if err != nil {
		s.items = newCollection[E]()
		clear(s.pending)
		s.lastErr = err
		fns = s.commit()
		s.mu.Unlock()
		notify(fns)
		s.log.Warn("load failed", "scope", scopeID, "err", err)
		return s.finish("load", fail(fmt.Sprintf("Не удалось загрузить список: %s", gateway.Describe(err)), err))
	}

	items := newCollection[E]()
	for _, e := range list {
		items.append(Confirmed(e.Key()), e)
	}
	s.items = items
	clear(s.pending)
	s.lastErr = nil
	n := items.len()
	fns = s.commit()
	s.mu.Unlock()
	notify(fns)
	s.log.Info("collection loaded", "scope", scopeID, "count", n)
	return s.finish("load", ok(fmt.Sprintf("Загружено записей: %d", n)))
}

// CreateOptimistic вставляет запись с временным id в начало коллекции и создаёт её на сервере.
// При успехе временная запись заменяется серверной на той же позиции, при ошибке удаляется.
func (s *Store[E, D, P]) CreateOptimistic(ctx context.Context, draft D) Result[E] {
	s.mu.Lock()
	scopeID := s.scopeID
	s.mu.Unlock()
	if scopeID == 0 {
		return Result[E]{Outcome: s.finish("create", fail(s.opts.noScopeMessage(), ErrNoScope))}
	}
	if err := draft.Validate(); err != nil {
		return Result[E]{Outcome: s.finish("create",
			fail(fmt.Sprintf("%s не создан: %v", s.opts.Noun, err), errors.Join(ErrInvalid, err)))}
	}

	tmp := s.opts.IDs.Allocate()
	key := Provisional(tmp)

	s.mu.Lock()
	s.items.prepend(key, draft.Build(scopeID))
	s.pending[tmp] = struct{}{}
	fns := s.commit()
	s.mu.Unlock()
	notify(fns)
	s.log.Debug("optimistic create applied", "pending_id", tmp, "scope", scopeID)

	created, err := s.gw.Create(ctx, scopeID, draft)
	if err == nil && created.Key() <= 0 {
		err = gateway.Wrap(s.name+".create", gateway.ErrNetwork, "пустой ответ сервера", nil)
	}

	s.mu.Lock()
	delete(s.pending, tmp)
	if err != nil {
		s.items.remove(key)
		fns = s.commit()
		s.mu.Unlock()
		notify(fns)
		s.log.Warn("optimistic create rolled back", "pending_id", tmp, "err", err)
		return Result[E]{Outcome: s.finish("create",
			fail(fmt.Sprintf("%s не создан: %s", s.opts.Noun, gateway.Describe(err)), err))}
	}

	final := Confirmed(created.Key())
	if !s.items.swap(key, final, created) && s.scopeID == scopeID {
		// временную запись уже убрал load; сервер её создал, поэтому возвращаем
		if !s.items.set(final, created) {
			s.items.prepend(final, created)
		}
	}
	fns = s.commit()
	s.mu.Unlock()
	notify(fns)
	s.log.Info("create reconciled", "pending_id", tmp, "id", final.ID)
	return Result[E]{Outcome: s.finish("create", ok(s.opts.Noun+" создан")), Entity: &created}
}

// UpdateOptimistic сразу накладывает патч на запись, затем обновляет её на сервере.
// Ответ сервера полностью заменяет запись. При ошибке оптимистичное значение
// остаётся, если не включён Options.RollbackFailedUpdates.
func (s *Store[E, D, P]) UpdateOptimistic(ctx context.Context, id int64, patch P) Result[E] {
	if id <= 0 {
		panic(fmt.Sprintf("optimistic: %s update requires a confirmed id, got %d", s.name, id))
	}
	if err := patch.Validate(); err != nil {
		return Result[E]{Outcome: s.finish("update",
			fail(fmt.Sprintf("%s не обновлён: %v", s.opts.Noun, err), errors.Join(ErrInvalid, err)))}
	}

	key := Confirmed(id)
	s.mu.Lock()
	prev, found := s.items.get(key)
	if !found {
		s.mu.Unlock()
		return Result[E]{Outcome: s.finish("update",
			fail(fmt.Sprintf("%s не найден в списке", s.opts.Noun), ErrNotLoaded))}
	}
	s.items.set(key, patch.Apply(prev))
	fns := s.commit()
	s.mu.Unlock()
	notify(fns)
	s.log.Debug("optimistic update applied", "id", id)

	updated, err := s.gw.Update(ctx, id, patch)

	s.mu.Lock()
	if err != nil {
		restored := s.opts.RollbackFailedUpdates && s.items.set(key, prev)
		if restored {
			fns = s.commit()
		} else {
			fns = nil
		}
		s.mu.Unlock()
		notify(fns)
		s.log.Warn("update failed", "id", id, "restored", restored, "err", err)
		return Result[E]{Outcome: s.finish("update",
			fail(fmt.Sprintf("%s не обновлён: %s", s.opts.Noun, gateway.Describe(err)), err))}
	}
	if s.items.set(key, updated) {
		fns = s.commit()
	} else {
		fns = nil
	}
	s.mu.Unlock()
	notify(fns)
	s.log.Info("update reconciled", "id", id)
	return Result[E]{Outcome: s.finish("update", ok(s.opts.Noun+" обновлён")), Entity: &updated}
}

// Delete удаляет запись на сервере и только после успеха убирает её из коллекции.
func (s *Store[E, D, P]) Delete(ctx context.Context, id int64) Outcome {
	if id <= 0 {
		panic(fmt.Sprintf("optimistic: %s delete requires a confirmed id, got %d", s.name, id))
	}
	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Warn("delete failed", "id", id, "err", err)
		return s.finish("delete", fail(fmt.Sprintf("%s не удалён: %s", s.opts.Noun, gateway.Describe(err)), err))
	}

	s.mu.Lock()
	var fns []func()
	if s.items.remove(Confirmed(id)) {
		fns = s.commit()
	}
	s.mu.Unlock()
	notify(fns)
	s.log.Info("deleted", "id", id)
	return s.finish("delete", ok(s.opts.Noun+" удалён"))
}

/* внутреннее */

// commit вызывается под s.mu; возвращает подписчиков для вызова после разблокировки.
func (s *Store[E, D, P]) commit() []func() {
	s.version++
	s.opts.Metrics.Size(s.name, s.items.len(), len(s.pending))
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}

func (s *Store[E, D, P]) finish(op string, o Outcome) Outcome {
	status := "ok"
	if !o.Success {
		status = "error"
	}
	s.opts.Metrics.Operation(s.name, op, status)
	if s.opts.Notify != nil {
		s.opts.Notify(op, o)
	}
	return o
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
