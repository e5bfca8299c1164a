package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/domain/materials"
	"github.com/Spok95/empresa-pos/internal/domain/products"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

// ProductPrices применяет sale_price к товарам.
type ProductPrices struct{ Store *products.Store }

func (p ProductPrices) SetPrice(ctx context.Context, id int64, price decimal.Decimal) optimistic.Outcome {
	return p.Store.UpdateOptimistic(ctx, id, products.Patch{SalePrice: &price}).Outcome
}

func (p ProductPrices) Reload(ctx context.Context) optimistic.Outcome {
	return p.Store.Refresh(ctx, p.Store.ScopeID())
}

// MaterialCosts применяет cost к материалам.
type MaterialCosts struct{ Store *materials.Store }

func (m MaterialCosts) SetPrice(ctx context.Context, id int64, price decimal.Decimal) optimistic.Outcome {
	return m.Store.UpdateOptimistic(ctx, id, materials.Patch{Cost: &price}).Outcome
}

func (m MaterialCosts) Reload(ctx context.Context) optimistic.Outcome {
	return m.Store.Refresh(ctx, m.Store.ScopeID())
}

// FromProducts пропускает ещё не подтверждённые сервером записи.
func FromProducts(items []products.Product) []Row {
	out := make([]Row, 0, len(items))
	for _, p := range items {
		if p.ID <= 0 {
			continue
		}
		out = append(out, Row{ID: p.ID, Name: p.Name, Unit: p.Unit, Cost: p.Cost, SalePrice: p.SalePrice, Stock: p.Stock})
	}
	return out
}

// FromMaterials; у материала нет цены продажи, колонка остаётся нулевой.
func FromMaterials(items []materials.Material) []Row {
	out := make([]Row, 0, len(items))
	for _, m := range items {
		if m.ID <= 0 {
			continue
		}
		out = append(out, Row{ID: m.ID, Name: m.Name, Unit: string(m.Unit), Cost: m.Cost, Stock: m.Stock})
	}
	return out
}
