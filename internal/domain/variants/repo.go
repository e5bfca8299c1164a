package variants

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/empresa-pos/internal/infra/db"
)

type Repo struct{ pool *pgxpool.Pool }

var _ Gateway = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const columns = `id, product_id, name, barcode, sale_price, stock, created_at`

func scan(row pgx.Row) (Variant, error) {
	var v Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.Barcode, &v.SalePrice, &v.Stock, &v.CreatedAt)
	return v, err
}

func (r *Repo) List(ctx context.Context, productID int64) ([]Variant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns+`
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, db.Classify("variants.list", err)
	}
	defer rows.Close()

	var out []Variant
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, db.Classify("variants.list", err)
		}
		out = append(out, v)
	}
	return out, db.Classify("variants.list", rows.Err())
}

func (r *Repo) Create(ctx context.Context, productID int64, d Draft) (Variant, error) {
	v, err := scan(r.pool.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, name, barcode, sale_price, stock)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+columns+`
	`, productID, d.Name, d.Barcode, d.SalePrice, d.Stock))
	return v, db.Classify("variants.create", err)
}

func (r *Repo) Update(ctx context.Context, id int64, p Patch) (Variant, error) {
	v, err := scan(r.pool.QueryRow(ctx, `
		UPDATE product_variants SET
			name       = COALESCE($2::text, name),
			barcode    = COALESCE($3::text, barcode),
			sale_price = COALESCE($4::numeric, sale_price),
			stock      = COALESCE($5::numeric, stock)
		WHERE id = $1
		RETURNING `+columns+`
	`, id, p.Name, p.Barcode, p.SalePrice, p.Stock))
	return v, db.Classify("variants.update", err)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return db.Classify("variants.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return db.Classify("variants.delete", pgx.ErrNoRows)
	}
	return nil
}
