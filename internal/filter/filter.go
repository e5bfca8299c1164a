// Package filter — локальный отбор записей по названию и диапазонам чисел.
package filter

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Field string

const (
	Cost      Field = "cost"
	SalePrice Field = "sale_price"
	Stock     Field = "stock"
)

// Filterable — запись, доступная фильтру. FilterValue возвращает false, если у
// записи нет такого поля; предикат по такому полю к ней не применяется.
type Filterable interface {
	FilterName() string
	FilterValue(Field) (decimal.Decimal, bool)
}

// Range — включительный диапазон. Пустая или нечисловая граница не ограничивает.
type Range struct {
	From string
	To   string
}

// Predicates — набор независимых условий, объединяемых по И.
// Пустое Name совпадает со всем.
type Predicates struct {
	Name   string
	Ranges map[Field]Range
}

// With возвращает копию с диапазоном для field.
func (p Predicates) With(field Field, from, to string) Predicates {
	out := p.clone()
	out.Ranges[field] = Range{From: from, To: to}
	return out
}

type bound struct {
	field    Field
	from, to *decimal.Decimal
}

type compiled struct {
	name   string
	bounds []bound
}

// ParseBound разбирает границу; запятая допускается как десятичный разделитель.
func ParseBound(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func compile(p Predicates) compiled {
	c := compiled{name: strings.ToLower(strings.TrimSpace(p.Name))}
	for f, r := range p.Ranges {
		b := bound{field: f}
		if d, ok := ParseBound(r.From); ok {
			b.from = &d
		}
		if d, ok := ParseBound(r.To); ok {
			b.to = &d
		}
		if b.from != nil || b.to != nil {
			c.bounds = append(c.bounds, b)
		}
	}
	return c
}

func (c compiled) match(e Filterable) bool {
	if c.name != "" && !strings.Contains(strings.ToLower(e.FilterName()), c.name) {
		return false
	}
	for _, b := range c.bounds {
		v, ok := e.FilterValue(b.field)
		if !ok {
			continue
		}
		if b.from != nil && v.LessThan(*b.from) {
			return false
		}
		if b.to != nil && v.GreaterThan(*b.to) {
			return false
		}
	}
	return true
}

// Apply возвращает записи, удовлетворяющие всем предикатам, в исходном порядке.
func Apply[E Filterable](items []E, p Predicates) []E {
	c := compile(p)
	out := make([]E, 0, len(items))
	for _, it := range items {
		if c.match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Active сообщает, ограничивает ли набор хоть что-нибудь.
func (p Predicates) Active() bool {
	c := compile(p)
	return c.name != "" || len(c.bounds) > 0
}
