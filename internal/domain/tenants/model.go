package tenants

import "time"

// Tenant — компания (empresa), в пределах которой живут товары и материалы.
type Tenant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
