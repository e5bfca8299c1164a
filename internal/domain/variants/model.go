package variants

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/filter"
)

// Variant — вариант товара (размер, цвет) со своей ценой и остатком.
type Variant struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode,omitempty"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     decimal.Decimal `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

func (v Variant) Key() int64 { return v.ID }

func (v Variant) FilterName() string { return v.Name }

func (v Variant) FilterValue(f filter.Field) (decimal.Decimal, bool) {
	switch f {
	case filter.SalePrice:
		return v.SalePrice, true
	case filter.Stock:
		return v.Stock, true
	}
	return decimal.Decimal{}, false
}

type Draft struct {
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode,omitempty"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     decimal.Decimal `json:"stock"`
}

func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("название обязательно"))
	}
	if d.SalePrice.IsNegative() {
		errs = append(errs, errors.New("цена продажи не может быть отрицательной"))
	}
	return errors.Join(errs...)
}

func (d Draft) Build(productID int64) Variant {
	return Variant{
		ProductID: productID,
		Name:      strings.TrimSpace(d.Name),
		Barcode:   d.Barcode,
		SalePrice: d.SalePrice,
		Stock:     d.Stock,
		CreatedAt: time.Now(),
	}
}

type Patch struct {
	Name      *string          `json:"name,omitempty"`
	Barcode   *string          `json:"barcode,omitempty"`
	SalePrice *decimal.Decimal `json:"sale_price,omitempty"`
	Stock     *decimal.Decimal `json:"stock,omitempty"`
}

func (p Patch) Validate() error {
	if p.Name == nil && p.Barcode == nil && p.SalePrice == nil && p.Stock == nil {
		return errors.New("нет изменений")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("название обязательно")
	}
	if p.SalePrice != nil && p.SalePrice.IsNegative() {
		return errors.New("цена продажи не может быть отрицательной")
	}
	return nil
}

func (p Patch) Apply(v Variant) Variant {
	if p.Name != nil {
		v.Name = strings.TrimSpace(*p.Name)
	}
	if p.Barcode != nil {
		v.Barcode = *p.Barcode
	}
	if p.SalePrice != nil {
		v.SalePrice = *p.SalePrice
	}
	if p.Stock != nil {
		v.Stock = *p.Stock
	}
	return v
}
