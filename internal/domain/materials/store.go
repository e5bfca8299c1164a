package materials

import (
	"github.com/Spok95/empresa-pos/internal/gateway"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type Store = optimistic.Store[Material, Draft, Patch]

type Gateway = gateway.Gateway[Material, Draft, Patch]

func NewStore(gw Gateway, opts optimistic.Options) *Store {
	if opts.Noun == "" {
		opts.Noun = "Материал"
	}
	return optimistic.New[Material, Draft, Patch]("materials", gw, opts)
}
