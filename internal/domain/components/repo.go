package components

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/empresa-pos/internal/infra/db"
)

type Repo struct{ pool *pgxpool.Pool }

var _ Gateway = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const selectComponent = `
	SELECT c.id, c.product_id, c.material_id, m.name, m.unit, c.quantity, c.quantity * m.cost, c.created_at
	FROM product_components c
	JOIN materials m ON m.id = c.material_id
`

func scan(row pgx.Row) (Component, error) {
	var c Component
	err := row.Scan(&c.ID, &c.ProductID, &c.MaterialID, &c.MaterialName, &c.Unit, &c.Quantity, &c.Cost, &c.CreatedAt)
	return c, err
}

func (r *Repo) List(ctx context.Context, productID int64) ([]Component, error) {
	rows, err := r.pool.Query(ctx, selectComponent+` WHERE c.product_id = $1 ORDER BY c.id`, productID)
	if err != nil {
		return nil, db.Classify("components.list", err)
	}
	defer rows.Close()

	var out []Component
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, db.Classify("components.list", err)
		}
		out = append(out, c)
	}
	return out, db.Classify("components.list", rows.Err())
}

// recalcCost пересчитывает себестоимость товара по составу в той же транзакции.
func recalcCost(ctx context.Context, tx pgx.Tx, productID int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE products SET cost = COALESCE((
			SELECT SUM(c.quantity * m.cost)
			FROM product_components c
			JOIN materials m ON m.id = c.material_id
			WHERE c.product_id = $1
		), 0)
		WHERE id = $1
	`, productID)
	return err
}

func (r *Repo) Create(ctx context.Context, productID int64, d Draft) (Component, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Component{}, db.Classify("components.create", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO product_components (product_id, material_id, quantity)
		VALUES ($1,$2,$3)
		RETURNING id
	`, productID, d.MaterialID, d.Quantity).Scan(&id); err != nil {
		return Component{}, db.Classify("components.create", err)
	}
	if err := recalcCost(ctx, tx, productID); err != nil {
		return Component{}, db.Classify("components.create", err)
	}
	c, err := scan(tx.QueryRow(ctx, selectComponent+` WHERE c.id = $1`, id))
	if err != nil {
		return Component{}, db.Classify("components.create", err)
	}
	return c, db.Classify("components.create", tx.Commit(ctx))
}

func (r *Repo) Update(ctx context.Context, id int64, p Patch) (Component, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Component{}, db.Classify("components.update", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID int64
	if err := tx.QueryRow(ctx, `
		UPDATE product_components SET quantity = COALESCE($2::numeric, quantity)
		WHERE id = $1
		RETURNING product_id
	`, id, p.Quantity).Scan(&productID); err != nil {
		return Component{}, db.Classify("components.update", err)
	}
	if err := recalcCost(ctx, tx, productID); err != nil {
		return Component{}, db.Classify("components.update", err)
	}
	c, err := scan(tx.QueryRow(ctx, selectComponent+` WHERE c.id = $1`, id))
	if err != nil {
		return Component{}, db.Classify("components.update", err)
	}
	return c, db.Classify("components.update", tx.Commit(ctx))
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return db.Classify("components.delete", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID int64
	if err := tx.QueryRow(ctx, `DELETE FROM product_components WHERE id = $1 RETURNING product_id`, id).Scan(&productID); err != nil {
		return db.Classify("components.delete", err)
	}
	if err := recalcCost(ctx, tx, productID); err != nil {
		return db.Classify("components.delete", err)
	}
	return db.Classify("components.delete", tx.Commit(ctx))
}
