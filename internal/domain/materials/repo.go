package materials

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/empresa-pos/internal/infra/db"
)

// Repo — шлюз материалов напрямую в Postgres.
type Repo struct{ pool *pgxpool.Pool }

var _ Gateway = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const columns = `id, empresa_id, name, barcode, unit, cost, stock, created_at`

func scan(row pgx.Row) (Material, error) {
	var m Material
	err := row.Scan(&m.ID, &m.EmpresaID, &m.Name, &m.Barcode, &m.Unit, &m.Cost, &m.Stock, &m.CreatedAt)
	return m, err
}

func (r *Repo) List(ctx context.Context, empresaID int64) ([]Material, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+columns+`
		FROM materials
		WHERE empresa_id = $1
		ORDER BY name, id
	`, empresaID)
	if err != nil {
		return nil, db.Classify("materials.list", err)
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, db.Classify("materials.list", err)
		}
		out = append(out, m)
	}
	return out, db.Classify("materials.list", rows.Err())
}

func (r *Repo) Create(ctx context.Context, empresaID int64, d Draft) (Material, error) {
	m, err := scan(r.pool.QueryRow(ctx, `
		INSERT INTO materials (empresa_id, name, barcode, unit, cost, stock)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING `+columns+`
	`, empresaID, d.Name, d.Barcode, string(d.Unit), d.Cost, d.Stock))
	return m, db.Classify("materials.create", err)
}

func (r *Repo) Update(ctx context.Context, id int64, p Patch) (Material, error) {
	var unit *string
	if p.Unit != nil {
		u := string(*p.Unit)
		unit = &u
	}
	m, err := scan(r.pool.QueryRow(ctx, `
		UPDATE materials SET
			name    = COALESCE($2::text, name),
			barcode = COALESCE($3::text, barcode),
			unit    = COALESCE($4::text, unit),
			cost    = COALESCE($5::numeric, cost),
			stock   = COALESCE($6::numeric, stock)
		WHERE id = $1
		RETURNING `+columns+`
	`, id, p.Name, p.Barcode, unit, p.Cost, p.Stock))
	return m, db.Classify("materials.update", err)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return db.Classify("materials.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return db.Classify("materials.delete", pgx.ErrNoRows)
	}
	return nil
}
