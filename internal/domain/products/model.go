package products

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/filter"
)

type Product struct {
	ID        int64  `json:"id"`
	EmpresaID int64  `json:"empresa_id"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode,omitempty"`
	Unit      string `json:"unit"`
	// Cost считается сервером по компонентам; локально не пересчитывается.
	Cost      decimal.Decimal `json:"cost"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

func (p Product) Key() int64 { return p.ID }

func (p Product) FilterName() string { return p.Name }

func (p Product) FilterValue(f filter.Field) (decimal.Decimal, bool) {
	switch f {
	case filter.Cost:
		return p.Cost, true
	case filter.SalePrice:
		return p.SalePrice, true
	case filter.Stock:
		return p.Stock, true
	}
	return decimal.Decimal{}, false
}

// Margin — наценка продажной цены над себестоимостью.
func (p Product) Margin() decimal.Decimal { return p.SalePrice.Sub(p.Cost) }

type Draft struct {
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode,omitempty"`
	Unit      string          `json:"unit"`
	Cost      decimal.Decimal `json:"cost"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     decimal.Decimal `json:"stock"`
}

func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("название обязательно"))
	}
	if d.Cost.IsNegative() {
		errs = append(errs, errors.New("себестоимость не может быть отрицательной"))
	}
	if d.SalePrice.IsNegative() {
		errs = append(errs, errors.New("цена продажи не может быть отрицательной"))
	}
	if d.Stock.IsNegative() {
		errs = append(errs, errors.New("остаток не может быть отрицательным"))
	}
	return errors.Join(errs...)
}

func (d Draft) Build(empresaID int64) Product {
	unit := d.Unit
	if unit == "" {
		unit = "u"
	}
	return Product{
		EmpresaID: empresaID,
		Name:      strings.TrimSpace(d.Name),
		Barcode:   d.Barcode,
		Unit:      unit,
		Cost:      d.Cost,
		SalePrice: d.SalePrice,
		Stock:     d.Stock,
		CreatedAt: time.Now(),
	}
}

type Patch struct {
	Name      *string          `json:"name,omitempty"`
	Barcode   *string          `json:"barcode,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Stock     *decimal.Decimal `json:"stock,omitempty"`
}

func (p Patch) Validate() error {
	if p.Name == nil && p.Barcode == nil && p.Unit == nil && p.Cost == nil && p.SalePrice == nil && p.Stock == nil {
		return errors.New("нет изменений")
	}
	var errs []error
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, errors.New("название обязательно"))
	}
	if p.Cost != nil && p.Cost.IsNegative() {
		errs = append(errs, errors.New("себестоимость не может быть отрицательной"))
	}
	if p.SalePrice != nil && p.SalePrice.IsNegative() {
		errs = append(errs, errors.New("цена продажи не может быть отрицательной"))
	}
	if p.Stock != nil && p.Stock.IsNegative() {
		errs = append(errs, errors.New("остаток не может быть отрицательным"))
	}
	return errors.Join(errs...)
}

func (p Patch) Apply(pr Product) Product {
	if p.Name != nil {
		pr.Name = strings.TrimSpace(*p.Name)
	}
	if p.Barcode != nil {
		pr.Barcode = *p.Barcode
	}
	if p.Unit != nil {
		pr.Unit = *p.Unit
	}
	if p.Cost != nil {
		pr.Cost = *p.Cost
	}
	if p.SalePrice != nil {
		pr.SalePrice = *p.SalePrice
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	return pr
}
