package models

import "time"

// Player is an academy member. PositionID, CategoryID and BranchID reference
// tenant-owned lookup tables; writes validate that each referenced row
// belongs to the player's academy before touching the database.
type Player struct {
	ID          int       `json:"id"`
	AcademyID   int       `json:"academia_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Rut         string    `json:"rut"`
	BirthDate   time.Time `json:"birth_date"`
	PositionID  int       `json:"position_id,omitempty"`
	CategoryID  int       `json:"category_id,omitempty"`
	BranchID    int       `json:"branch_id,omitempty"`
	GuardianRut string    `json:"guardian_rut,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
