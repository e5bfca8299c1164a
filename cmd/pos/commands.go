package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/empresa-pos/internal/domain/materials"
	"github.com/Spok95/empresa-pos/internal/domain/products"
	"github.com/Spok95/empresa-pos/internal/filter"
	httpx "github.com/Spok95/empresa-pos/internal/infra/http"
	"github.com/Spok95/empresa-pos/internal/pricing"
)

func (a *app) serve(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		return err
	}

	var gatherer prometheus.Gatherer
	if a.cfg.Metrics.Enabled {
		gatherer = a.reg
	}
	srv := httpx.New(a.cfg.HTTP.Addr, gatherer, a.ready)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", "err", err)
		}
	}()
	a.log.Info("HTTP server started", "addr", a.cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	a.log.Info("graceful shutdown complete")
	return nil
}

func (a *app) importPrices(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prices-import", flag.ContinueOnError)
	kind := fs.String("kind", "products", "products | materials")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("prices-import: file is required")
	}

	var (
		target pricing.Target
		col    pricing.Column
	)
	switch *kind {
	case "products":
		target, col = pricing.ProductPrices{Store: a.products}, pricing.ColumnSalePrice
	case "materials":
		target, col = pricing.MaterialCosts{Store: a.materials}, pricing.ColumnCost
	default:
		return fmt.Errorf("prices-import: unknown kind %q", *kind)
	}

	if err := a.start(ctx); err != nil {
		return err
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	sum, err := pricing.Import(ctx, f, target, col)
	if err != nil {
		return err
	}
	fmt.Println(sum.Message())
	if !sum.Reload.Success {
		fmt.Println(sum.Reload.Message)
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	kind := fs.String("kind", "products", "products | materials")
	name := fs.String("name", "", "name substring")
	costFrom := fs.String("cost-from", "", "minimal cost")
	costTo := fs.String("cost-to", "", "maximal cost")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("export: file is required")
	}
	preds := filter.Predicates{Name: *name}.With(filter.Cost, *costFrom, *costTo)

	if err := a.start(ctx); err != nil {
		return err
	}

	var rows []pricing.Row
	switch *kind {
	case "products":
		v := filter.NewView[products.Product](a.products)
		defer v.Close()
		v.SetPredicates(preds)
		rows = pricing.FromProducts(v.Items())
	case "materials":
		v := filter.NewView[materials.Material](a.materials)
		defer v.Close()
		v.SetPredicates(preds)
		rows = pricing.FromMaterials(v.Items())
	default:
		return fmt.Errorf("export: unknown kind %q", *kind)
	}

	f, err := os.Create(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := pricing.Export(f, rows); err != nil {
		_ = f.Close()
		return err
	}
	a.log.Info("exported", "kind", *kind, "rows", len(rows), "file", fs.Arg(0))
	return f.Close()
}
