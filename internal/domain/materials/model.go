package materials

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/empresa-pos/internal/filter"
)

type Unit string

const (
	UnitPiece Unit = "u"
	UnitG     Unit = "g"
	UnitKg    Unit = "kg"
	UnitMl    Unit = "ml"
	UnitL     Unit = "l"
	UnitM     Unit = "m"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitG, UnitKg, UnitMl, UnitL, UnitM:
		return true
	}
	return false
}

type Material struct {
	ID        int64           `json:"id"`
	EmpresaID int64           `json:"empresa_id"`
	Name      string          `json:"name"`
	Barcode   string          `json:"barcode,omitempty"`
	Unit      Unit            `json:"unit"`
	Cost      decimal.Decimal `json:"cost"` // за единицу
	Stock     decimal.Decimal `json:"stock"` // может быть отрицательным
	CreatedAt time.Time       `json:"created_at"`
}

func (m Material) Key() int64 { return m.ID }

func (m Material) FilterName() string { return m.Name }

func (m Material) FilterValue(f filter.Field) (decimal.Decimal, bool) {
	switch f {
	case filter.Cost:
		return m.Cost, true
	case filter.Stock:
		return m.Stock, true
	}
	return decimal.Decimal{}, false
}

// Draft — данные формы создания материала.
type Draft struct {
	Name    string          `json:"name"`
	Barcode string          `json:"barcode,omitempty"`
	Unit    Unit            `json:"unit"`
	Cost    decimal.Decimal `json:"cost"`
	Stock   decimal.Decimal `json:"stock"`
}

func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("название обязательно"))
	}
	if !d.Unit.Valid() {
		errs = append(errs, errors.New("неизвестная единица измерения"))
	}
	if d.Cost.IsNegative() {
		errs = append(errs, errors.New("стоимость не может быть отрицательной"))
	}
	return errors.Join(errs...)
}

func (d Draft) Build(empresaID int64) Material {
	return Material{
		EmpresaID: empresaID,
		Name:      strings.TrimSpace(d.Name),
		Barcode:   d.Barcode,
		Unit:      d.Unit,
		Cost:      d.Cost,
		Stock:     d.Stock,
		CreatedAt: time.Now(),
	}
}

// Patch — частичное изменение; nil-поля не трогаются.
type Patch struct {
	Name    *string          `json:"name,omitempty"`
	Barcode *string          `json:"barcode,omitempty"`
	Unit    *Unit            `json:"unit,omitempty"`
	Cost    *decimal.Decimal `json:"cost,omitempty"`
	Stock   *decimal.Decimal `json:"stock,omitempty"`
}

func (p Patch) Validate() error {
	if p.Name == nil && p.Barcode == nil && p.Unit == nil && p.Cost == nil && p.Stock == nil {
		return errors.New("нет изменений")
	}
	var errs []error
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, errors.New("название обязательно"))
	}
	if p.Unit != nil && !p.Unit.Valid() {
		errs = append(errs, errors.New("неизвестная единица измерения"))
	}
	if p.Cost != nil && p.Cost.IsNegative() {
		errs = append(errs, errors.New("стоимость не может быть отрицательной"))
	}
	return errors.Join(errs...)
}

func (p Patch) Apply(m Material) Material {
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Barcode != nil {
		m.Barcode = *p.Barcode
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.Cost != nil {
		m.Cost = *p.Cost
	}
	if p.Stock != nil {
		m.Stock = *p.Stock
	}
	return m
}
