package optimistic

import (
	"context"

	"github.com/Spok95/empresa-pos/internal/gateway"
)

// ChildStore — Store, областью которого служит родительская запись (товар).
// Производные поля родителя (например, себестоимость) локально не пересчитываются:
// после успешного изменения вызывается AfterChange, и родитель перечитывается снаружи.
type ChildStore[E Entity, D Draft[E], P Patch[E]] struct {
	*Store[E, D, P]
	afterChange func(ctx context.Context, parentID int64)
}

func NewChild[E Entity, D Draft[E], P Patch[E]](name string, gw gateway.Gateway[E, D, P], opts Options,
	afterChange func(ctx context.Context, parentID int64)) *ChildStore[E, D, P] {
	if opts.NoScopeMessage == "" {
		opts.NoScopeMessage = "Товар не выбран"
	}
	return &ChildStore[E, D, P]{Store: New(name, gw, opts), afterChange: afterChange}
}

func (c *ChildStore[E, D, P]) ParentID() int64 { return c.ScopeID() }

// Open переключает хранилище на родителя parentID и загружает его дочерние записи.
func (c *ChildStore[E, D, P]) Open(ctx context.Context, parentID int64) Outcome {
	c.Reset(parentID)
	return c.Load(ctx, parentID)
}

func (c *ChildStore[E, D, P]) CreateOptimistic(ctx context.Context, draft D) Result[E] {
	parentID := c.ScopeID()
	res := c.Store.CreateOptimistic(ctx, draft)
	if res.Success {
		c.changed(ctx, parentID)
	}
	return res
}

func (c *ChildStore[E, D, P]) UpdateOptimistic(ctx context.Context, id int64, patch P) Result[E] {
	parentID := c.ScopeID()
	res := c.Store.UpdateOptimistic(ctx, id, patch)
	if res.Success {
		c.changed(ctx, parentID)
	}
	return res
}

func (c *ChildStore[E, D, P]) Delete(ctx context.Context, id int64) Outcome {
	parentID := c.ScopeID()
	res := c.Store.Delete(ctx, id)
	if res.Success {
		c.changed(ctx, parentID)
	}
	return res
}

func (c *ChildStore[E, D, P]) changed(ctx context.Context, parentID int64) {
	if c.afterChange != nil && parentID != 0 {
		c.afterChange(ctx, parentID)
	}
}
