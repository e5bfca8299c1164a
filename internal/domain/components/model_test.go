package components

import "testing"

func TestDraft(t *testing.T) {
	if err := (Draft{MaterialID: 1, Quantity: 0.5}).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (Draft{Quantity: -1}).Validate(); err == nil {
		t.Fatal("expected error for missing material and bad quantity")
	}
	c := Draft{MaterialID: 3, Quantity: 2, MaterialName: "Screw"}.Build(9)
	if c.ProductID != 9 || c.MaterialName != "Screw" || !c.Cost.IsZero() {
		t.Fatalf("built %+v", c)
	}
}

func TestPatch(t *testing.T) {
	zero := 0.0
	if (Patch{}).Validate() == nil || (Patch{Quantity: &zero}).Validate() == nil {
		t.Fatal("empty and zero quantity must be rejected")
	}
	q := 4.0
	if got := (Patch{Quantity: &q}).Apply(Component{Quantity: 1}); got.Quantity != 4 {
		t.Fatalf("quantity = %v", got.Quantity)
	}
}
