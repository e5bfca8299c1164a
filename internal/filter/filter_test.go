package filter

import (
	"testing"

	"github.com/shopspring/decimal"
)

type row struct {
	name  string
	cost  string
	price string // пусто — у сущности нет цены продажи
	stock string
}

func (r row) FilterName() string { return r.name }

func (r row) FilterValue(f Field) (decimal.Decimal, bool) {
	var s string
	switch f {
	case Cost:
		s = r.cost
	case SalePrice:
		s = r.price
	case Stock:
		s = r.stock
	}
	if s == "" {
		return decimal.Decimal{}, false
	}
	return decimal.RequireFromString(s), true
}

var catalog = []row{
	{name: "Screw M3", cost: "5", price: "7", stock: "100"},
	{name: "Bolt", cost: "6", price: "9", stock: "10"},
	{name: "screwdriver", cost: "12", price: "20", stock: "3"},
	{name: "Wood screw", cost: "4", price: "6", stock: "0"},
	{name: "Nail", cost: "1", price: "2", stock: "500"},
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply_NameAndCostRange(t *testing.T) {
	p := Predicates{Name: "scr"}.With(Cost, "4", "10")
	got := names(Apply(catalog, p))
	want := []string{"Screw M3", "Wood screw"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApply_Cases(t *testing.T) {
	cases := []struct {
		name string
		p    Predicates
		want []string
	}{
		{"empty keeps all in order", Predicates{}, []string{"Screw M3", "Bolt", "screwdriver", "Wood screw", "Nail"}},
		{"case insensitive name", Predicates{Name: "  SCREW "}, []string{"Screw M3", "screwdriver", "Wood screw"}},
		{"inclusive bounds", Predicates{}.With(Cost, "5", "6"), []string{"Screw M3", "Bolt"}},
		{"open lower bound", Predicates{}.With(Stock, "", "3"), []string{"screwdriver", "Wood screw"}},
		{"comma decimal", Predicates{}.With(SalePrice, "6,5", ""), []string{"Screw M3", "Bolt", "screwdriver"}},
		{"invalid bound ignored", Predicates{}.With(Cost, "abc", "5"), []string{"Screw M3", "Wood screw", "Nail"}},
		{"two ranges", Predicates{}.With(Cost, "4", "").With(Stock, "10", ""), []string{"Screw M3", "Bolt"}},
		{"nothing matches", Predicates{Name: "hammer"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Apply(catalog, tc.p))
			if !equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApply_ComposesAsSubset(t *testing.T) {
	base := Predicates{Name: "scr"}
	wider := Apply(catalog, base)
	narrower := Apply(catalog, base.With(Cost, "", "10"))
	in := map[string]bool{}
	for _, r := range wider {
		in[r.name] = true
	}
	for _, r := range narrower {
		if !in[r.name] {
			t.Fatalf("%q passed the narrower filter but not the wider one", r.name)
		}
	}
	if len(narrower) >= len(wider) {
		t.Fatalf("extra predicate must narrow: %d vs %d", len(narrower), len(wider))
	}
}

func TestApply_FieldMissingIsNotApplicable(t *testing.T) {
	rows := []row{{name: "material", cost: "3"}, {name: "product", cost: "3", price: "50"}}
	got := names(Apply(rows, Predicates{}.With(SalePrice, "", "10")))
	if !equal(got, []string{"material"}) {
		t.Fatalf("got %v", got)
	}
}

func TestWith_DoesNotMutate(t *testing.T) {
	base := Predicates{}.With(Cost, "1", "2")
	_ = base.With(Stock, "1", "")
	if len(base.Ranges) != 1 {
		t.Fatalf("With must copy, got %v", base.Ranges)
	}
}

func TestActive(t *testing.T) {
	if (Predicates{}).Active() || (Predicates{}.With(Cost, "x", "")).Active() {
		t.Fatal("empty or unparsable predicates are inactive")
	}
	if !(Predicates{Name: "a"}).Active() || !(Predicates{}.With(Cost, "1", "")).Active() {
		t.Fatal("expected active")
	}
}
