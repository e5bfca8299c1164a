package components

import (
	"context"

	"github.com/Spok95/empresa-pos/internal/gateway"
	"github.com/Spok95/empresa-pos/internal/optimistic"
)

type Gateway = gateway.Gateway[Component, Draft, Patch]

// Coordinator — состав одного товара. Изменение состава меняет себестоимость товара
// на сервере; refreshParent вызывается после каждой успешной операции, чтобы
// вызывающий перечитал товар.
type Coordinator = optimistic.ChildStore[Component, Draft, Patch]

func NewCoordinator(gw Gateway, opts optimistic.Options, refreshParent func(ctx context.Context, productID int64)) *Coordinator {
	if opts.Noun == "" {
		opts.Noun = "Компонент"
	}
	return optimistic.NewChild[Component, Draft, Patch]("components", gw, opts, refreshParent)
}
