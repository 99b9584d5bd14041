package models

import "time"

// News is an academy announcement. PublishedAt is nil while the item is a
// draft.
type News struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"` // public identifier, a UUID
	AcademyID   int        `json:"academia_id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
