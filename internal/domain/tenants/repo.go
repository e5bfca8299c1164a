package tenants

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/empresa-pos/internal/infra/db"
)

// Repo перечисляет компании, доступные пользователю userID.
type Repo struct {
	pool   *pgxpool.Pool
	userID int64
}

var _ Lister = (*Repo)(nil)

func NewRepo(pool *pgxpool.Pool, userID int64) *Repo { return &Repo{pool: pool, userID: userID} }

func (r *Repo) ListTenants(ctx context.Context) ([]Tenant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.name, e.tax_id, e.created_at
		FROM empresas e
		JOIN user_empresas ue ON ue.empresa_id = e.id
		WHERE ue.user_id = $1
		ORDER BY e.id
	`, r.userID)
	if err != nil {
		return nil, db.Classify("tenants.list", err)
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		var t Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.TaxID, &t.CreatedAt); err != nil {
			return nil, db.Classify("tenants.list", err)
		}
		out = append(out, t)
	}
	return out, db.Classify("tenants.list", rows.Err())
}
