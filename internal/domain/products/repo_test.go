package products

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/gateway"
	"github.com/Spok95/empresa-pos/internal/infra/db"
)

func TestRepo_CRUD(t *testing.T) {
	dsn := os.Getenv("POS_TEST_DSN")
	if dsn == "" {
		t.Skipf("POS_TEST_DSN not set; skipping Postgres test")
	}
	if err := db.Migrate(dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	var empresaID int64
	if err := pool.QueryRow(ctx, `INSERT INTO empresas (name) VALUES ('test') RETURNING id`).Scan(&empresaID); err != nil {
		t.Fatal(err)
	}
	defer func() { _, _ = pool.Exec(context.Background(), `DELETE FROM empresas WHERE id = $1`, empresaID) }()

	r := NewRepo(pool)
	created, err := r.Create(ctx, empresaID, Draft{Name: "Screw", Unit: "u", SalePrice: decimal.NewFromInt(7), Stock: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID <= 0 || created.EmpresaID != empresaID {
		t.Fatalf("created %+v", created)
	}

	price := decimal.RequireFromString("8.50")
	updated, err := r.Update(ctx, created.ID, Patch{SalePrice: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.SalePrice.Equal(price) || updated.Name != "Screw" {
		t.Fatalf("updated %+v", updated)
	}

	list, err := r.List(ctx, empresaID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}

	neg := decimal.NewFromInt(-1)
	if _, err := r.Update(ctx, created.ID, Patch{SalePrice: &neg}); !errors.Is(err, gateway.ErrValidation) {
		t.Fatalf("check violation must be validation error, got %v", err)
	}
	if _, err := r.Update(ctx, created.ID+1_000_000, Patch{SalePrice: &price}); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("missing row must be not found, got %v", err)
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, created.ID); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}
