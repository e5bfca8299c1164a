package variants

import (
	"github.com/Spok95/empresa-pos/internal/gateway"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type Gateway = gateway.Gateway[Variant, Draft, Patch]

// Coordinator — варианты одного товара; область — id товара.
type Coordinator = optimistic.ChildStore[Variant, Draft, Patch]

func NewCoordinator(gw Gateway, opts optimistic.Options) *Coordinator {
	if opts.Noun == "" {
		opts.Noun = "Вариант"
	}
	return optimistic.NewChild[Variant, Draft, Patch]("variants", gw, opts, nil)
}
