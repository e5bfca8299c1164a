package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Spok95/empresa-pos/internal/domain/components"
	"github.com/Spok95/empresa-pos/internal/domain/materials"
	"github.com/Spok95/empresa-pos/internal/domain/products"
	"github.com/Spok95/empresa-pos/internal/domain/tenants"
	"github.com/Spok95/empresa-pos/internal/domain/variants"
	"github.com/Spok95/empresa-pos/internal/gateway"
)

// Resource — CRUD сущности по REST: коллекция под областью, элемент по id.
type Resource[E, D, P any] struct {
	c          *Client
	name       string
	collection string // "/empresas/%d/productos"
	item       string // "/productos/%d"
}

var _ gateway.Gateway[products.Product, products.Draft, products.Patch] = (*Resource[products.Product, products.Draft, products.Patch])(nil)

func NewResource[E, D, P any](c *Client, name, collection, item string) *Resource[E, D, P] {
	return &Resource[E, D, P]{c: c, name: name, collection: collection, item: item}
}

func (r *Resource[E, D, P]) List(ctx context.Context, scopeID int64) ([]E, error) {
	var out []E
	err := r.c.do(ctx, r.name+".list", http.MethodGet, fmt.Sprintf(r.collection, scopeID), nil, &out)
	return out, err
}

func (r *Resource[E, D, P]) Create(ctx context.Context, scopeID int64, draft D) (E, error) {
	var out E
	err := r.c.do(ctx, r.name+".create", http.MethodPost, fmt.Sprintf(r.collection, scopeID), draft, &out)
	return out, err
}

func (r *Resource[E, D, P]) Update(ctx context.Context, id int64, patch P) (E, error) {
	var out E
	err := r.c.do(ctx, r.name+".update", http.MethodPatch, fmt.Sprintf(r.item, id), patch, &out)
	return out, err
}

func (r *Resource[E, D, P]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, r.name+".delete", http.MethodDelete, fmt.Sprintf(r.item, id), nil, nil)
}

func Products(c *Client) products.Gateway {
	return NewResource[products.Product, products.Draft, products.Patch](c, "products", "/empresas/%d/productos", "/productos/%d")
}

func Materials(c *Client) materials.Gateway {
	return NewResource[materials.Material, materials.Draft, materials.Patch](c, "materials", "/empresas/%d/materiales", "/materiales/%d")
}

func Variants(c *Client) variants.Gateway {
	return NewResource[variants.Variant, variants.Draft, variants.Patch](c, "variants", "/productos/%d/variantes", "/variantes/%d")
}

func Components(c *Client) components.Gateway {
	return NewResource[components.Component, components.Draft, components.Patch](c, "components", "/productos/%d/componentes", "/componentes/%d")
}

// Tenants — список компаний текущего пользователя (пользователь определяется токеном).
type Tenants struct{ c *Client }

var _ tenants.Lister = Tenants{}

func NewTenants(c *Client) Tenants { return Tenants{c: c} }

func (t Tenants) ListTenants(ctx context.Context) ([]tenants.Tenant, error) {
	var out []tenants.Tenant
	err := t.c.do(ctx, "tenants.list", http.MethodGet, "/empresas", nil, &out)
	return out, err
}
