package products

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/empresa-pos/internal/infra/db"
)

type Repo struct{ pool *pgxpool.Pool }

var _ Gateway = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const columns = `id, empresa_id, name, barcode, unit, cost, sale_price, stock, created_at`

func scan(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.EmpresaID, &p.Name, &p.Barcode, &p.Unit, &p.Cost, &p.SalePrice, &p.Stock, &p.CreatedAt)
	return p, err
}

func (r *Repo) List(ctx context.Context, empresaID int64) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns+`
		FROM products
		WHERE empresa_id = $1
		ORDER BY name, id
	`, empresaID)
	if err != nil {
		return nil, db.Classify("products.list", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, db.Classify("products.list", err)
		}
		out = append(out, p)
	}
	return out, db.Classify("products.list", rows.Err())
}

func (r *Repo) Create(ctx context.Context, empresaID int64, d Draft) (Product, error) {
	unit := d.Unit
	if unit == "" {
		unit = "u"
	}
	p, err := scan(r.pool.QueryRow(ctx, `
		INSERT INTO products (empresa_id, name, barcode, unit, cost, sale_price, stock)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+columns+`
	`, empresaID, d.Name, d.Barcode, unit, d.Cost, d.SalePrice, d.Stock))
	return p, db.Classify("products.create", err)
}

func (r *Repo) Update(ctx context.Context, id int64, p Patch) (Product, error) {
	out, err := scan(r.pool.QueryRow(ctx, `
		UPDATE products SET
			name       = COALESCE($2::text, name),
			barcode    = COALESCE($3::text, barcode),
			unit       = COALESCE($4::text, unit),
			cost       = COALESCE($5::numeric, cost),
			sale_price = COALESCE($6::numeric, sale_price),
			stock      = COALESCE($7::numeric, stock)
		WHERE id = $1
		RETURNING `+columns+`
	`, id, p.Name, p.Barcode, p.Unit, p.Cost, p.SalePrice, p.Stock))
	return out, db.Classify("products.update", err)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return db.Classify("products.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return db.Classify("products.delete", pgx.ErrNoRows)
	}
	return nil
}
