package products

import (
	"github.com/Spok95/empresa-pos/internal/gateway"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type Store = optimistic.Store[Product, Draft, Patch]

type Gateway = gateway.Gateway[Product, Draft, Patch]

func NewStore(gw Gateway, opts optimistic.Options) *Store {
	if opts.Noun == "" {
		opts.Noun = "Товар"
	}
	return optimistic.New[Product, Draft, Patch]("products", gw, opts)
}
