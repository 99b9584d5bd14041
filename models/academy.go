package models

import "time"

// Academy is a tenant: an isolated club or academy. Every tenant-scoped row
// carries its academy id and every query filters by it.
type Academy struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
