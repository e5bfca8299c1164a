package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Spok95/empresa-pos/internal/auth"
	"github.com/Spok95/empresa-pos/internal/config"
	"github.com/Spok95/empresa-pos/internal/domain/components"
	"github.com/Spok95/empresa-pos/internal/domain/materials"
	"github.com/Spok95/empresa-pos/internal/domain/products"
	"github.com/Spok95/empresa-pos/internal/domain/tenants"
	"github.com/Spok95/empresa-pos/internal/domain/variants"
	"github.com/Spok95/empresa-pos/internal/gateway/rest"
	"github.com/Spok95/empresa-pos/internal/infra/db"
	"github.com/Spok95/empresa-pos/internal/infra/metrics"
	"github.com/Spok95/empresa-pos/internal/infra/notify"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type backend struct {
	products   products.Gateway
	materials  materials.Gateway
	variants   variants.Gateway
	components components.Gateway
	tenants    tenants.Lister
	close      func()
}

type app struct {
	cfg config.Config
	log *slog.Logger
	reg *prometheus.Registry

	notifier   *notify.Dispatcher
	scope      *tenants.Scope
	products   *products.Store
	materials  *materials.Store
	variants   *variants.Coordinator
	components *components.Coordinator

	closeOnce sync.Once
	closers   []func()
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	var session *auth.Session
	if cfg.Auth.Token != "" {
		s, err := auth.Parse(cfg.Auth.Token)
		if err != nil {
			return nil, fmt.Errorf("auth token: %w", err)
		}
		session = s
	}

	be, err := newBackend(ctx, cfg, session, log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, reg: prometheus.NewRegistry(), closers: []func(){be.close}}
	a.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(a.reg)

	a.notifier = notify.NewDispatcher(newNotifier(cfg, log), log, 64)
	dctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.notifier.Run(dctx)
	}()
	// уведомления досылаются до закрытия пула
	a.closers = append([]func(){func() { cancel(); wg.Wait() }}, a.closers...)

	ids := optimistic.NewIDAllocator()
	opts := func(name string) optimistic.Options {
		return optimistic.Options{
			IDs:                   ids,
			Logger:                log,
			Metrics:               m,
			Notify:                a.notifier.Hook(name),
			RollbackFailedUpdates: cfg.Store.RollbackFailedUpdates,
			DiscardStaleLoads:     cfg.Store.DiscardStaleLoads,
		}
	}

	a.products = products.NewStore(be.products, opts("products"))
	a.materials = materials.NewStore(be.materials, opts("materials"))
	a.variants = variants.NewCoordinator(be.variants, opts("variants"))
	a.components = components.NewCoordinator(be.components, opts("components"), a.refreshProducts)

	a.scope = tenants.NewScope(be.tenants, log)
	a.scope.Attach(a.products, a.materials, closeOnSwitch{a.variants}, closeOnSwitch{a.components})
	return a, nil
}

func newBackend(ctx context.Context, cfg config.Config, session *auth.Session, log *slog.Logger) (backend, error) {
	switch cfg.Backend.Kind {
	case config.BackendPostgres:
		if err := db.Migrate(cfg.Postgres.DSN); err != nil {
			return backend{}, fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return backend{}, fmt.Errorf("db connect: %w", err)
		}
		log.Info("db connected")

		userID := cfg.Postgres.UserID
		if session != nil && session.UserID != 0 {
			userID = session.UserID
		}
		return backend{
			products:   products.NewRepo(pool),
			materials:  materials.NewRepo(pool),
			variants:   variants.NewRepo(pool),
			components: components.NewRepo(pool),
			tenants:    tenants.NewRepo(pool, userID),
			close:      pool.Close,
		}, nil

	case config.BackendREST:
		c := rest.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, session, log)
		return backend{
			products:   rest.Products(c),
			materials:  rest.Materials(c),
			variants:   rest.Variants(c),
			components: rest.Components(c),
			tenants:    rest.NewTenants(c),
			close:      func() {},
		}, nil
	}
	return backend{}, fmt.Errorf("unknown backend %q", cfg.Backend.Kind)
}

func newNotifier(cfg config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Telegram.Token == "" {
		return notify.NewLog(log)
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		log.Warn("telegram unavailable, notifications go to log", "err", err)
		return notify.NewLog(log)
	}
	return tg
}

// refreshProducts перечитывает товары после изменения состава: себестоимость считает сервер.
func (a *app) refreshProducts(ctx context.Context, productID int64) {
	o := a.products.Refresh(ctx, a.products.ScopeID())
	if !o.Success {
		a.log.Warn("products refresh failed", "product_id", productID, "err", o.Err)
	}
}

// ready — сервис готов, когда выбрана компания.
func (a *app) ready() error {
	if a.scope.SelectedID() == 0 {
		return errors.New("tenant not selected")
	}
	return nil
}

// start выбирает компанию и ждёт первой загрузки.
func (a *app) start(ctx context.Context) error {
	r, err := a.scope.Init(ctx)
	if err != nil {
		return fmt.Errorf("tenants: %w", err)
	}
	if err := r.Wait(); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	t, _ := a.scope.Selected()
	a.log.Info("ready", "tenant_id", t.ID, "tenant", t.Name,
		"products", a.products.Len(), "materials", a.materials.Len())
	return nil
}

func (a *app) close() {
	a.closeOnce.Do(func() {
		for _, c := range a.closers {
			c()
		}
	})
}

// closeOnSwitch закрывает дочерний список при смене компании: его товар больше не выбран.
type closeOnSwitch struct {
	c interface{ Reset(int64) }
}

func (s closeOnSwitch) Reset(int64) { s.c.Reset(0) }

func (s closeOnSwitch) Refresh(context.Context, int64) optimistic.Outcome {
	return optimistic.Outcome{Success: true}
}
