package components

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/filter"
)

// Component — материал в составе товара. Cost = Quantity * стоимость материала,
// считает сервер; локальная запись до подтверждения имеет нулевую Cost.
type Component struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	Quantity     float64         `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (c Component) Key() int64 { return c.ID }

func (c Component) FilterName() string { return c.MaterialName }

func (c Component) FilterValue(f filter.Field) (decimal.Decimal, bool) {
	switch f {
	case filter.Cost:
		return c.Cost, true
	case filter.Stock:
		return decimal.NewFromFloat(c.Quantity), true
	}
	return decimal.Decimal{}, false
}

type Draft struct {
	MaterialID int64   `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	// MaterialName только для отображения оптимистичной записи, на сервер не уходит.
	MaterialName string `json:"-"`
}

func (d Draft) Validate() error {
	var errs []error
	if d.MaterialID <= 0 {
		errs = append(errs, errors.New("материал не выбран"))
	}
	if d.Quantity <= 0 {
		errs = append(errs, errors.New("количество должно быть больше нуля"))
	}
	return errors.Join(errs...)
}

func (d Draft) Build(productID int64) Component {
	return Component{
		ProductID:    productID,
		MaterialID:   d.MaterialID,
		MaterialName: d.MaterialName,
		Quantity:     d.Quantity,
		CreatedAt:    time.Now(),
	}
}

type Patch struct {
	Quantity *float64 `json:"quantity,omitempty"`
}

func (p Patch) Validate() error {
	if p.Quantity == nil {
		return errors.New("нет изменений")
	}
	if *p.Quantity <= 0 {
		return errors.New("количество должно быть больше нуля")
	}
	return nil
}

func (p Patch) Apply(c Component) Component {
	if p.Quantity != nil {
		c.Quantity = *p.Quantity
	}
	return c
}
