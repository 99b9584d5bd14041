package models

import "time"

// CatalogItem is one row of a tenant-owned lookup table (positions,
// categories or branches). All three tables share this shape.
type CatalogItem struct {
	ID        int       `json:"id"`
	AcademyID int       `json:"academia_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
