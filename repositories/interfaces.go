package repositories

import (
	"context"
	"errors"

	"github.com/academia-hq/backend/models"
)

// ErrNotFound is returned when a row does not exist within the effective
// academy. A row that exists under a different academy surfaces identically,
// so response codes cannot leak cross-tenant existence.
var ErrNotFound = errors.New("not found")

// OwnedTable identifies a tenant-owned lookup table that request payloads
// may reference through foreign keys. New resource routers register their
// lookup tables here so the ownership check stays the single extension point.
type OwnedTable struct {
	Name         string
	TenantColumn string
}

var (
	TablePositions  = OwnedTable{Name: "positions", TenantColumn: "academia_id"}
	TableCategories = OwnedTable{Name: "categories", TenantColumn: "academia_id"}
	TableBranches   = OwnedTable{Name: "branches", TenantColumn: "academia_id"}
)

// OwnershipValidator confirms that a referenced row belongs to the effective
// academy before a write using that reference proceeds.
type OwnershipValidator interface {
	// ValidateOwned returns nil when a row with the id exists under the
	// academy, and ErrNotFound otherwise
	ValidateOwned(ctx context.Context, table OwnedTable, id, academyID int) error
}

// CatalogRepository handles the tenant-owned lookup tables. All three
// catalog tables share one row shape, so one repository serves them.
type CatalogRepository interface {
	List(ctx context.Context, table OwnedTable, academyID int) ([]*models.CatalogItem, error)
	GetByID(ctx context.Context, table OwnedTable, academyID, id int) (*models.CatalogItem, error)
	Create(ctx context.Context, table OwnedTable, item *models.CatalogItem) error
	Update(ctx context.Context, table OwnedTable, item *models.CatalogItem) error
	Delete(ctx context.Context, table OwnedTable, academyID, id int) error
}

// PlayerRepository handles player data operations. Every method is scoped by
// academy id except ListByGuardianRut, which serves the guardian portal's
// self-ownership rule.
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, academyID, id int) (*models.Player, error)
	List(ctx context.Context, academyID int) ([]*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, academyID, id int) error
	ListByGuardianRut(ctx context.Context, rut string) ([]*models.Player, error)
}

// NewsRepository handles academy announcements.
type NewsRepository interface {
	Create(ctx context.Context, item *models.News) error
	GetByID(ctx context.Context, academyID, id int) (*models.News, error)
	List(ctx context.Context, academyID int) ([]*models.News, error)
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, academyID, id int) error
}

// Repositories groups all repository instances
type Repositories struct {
	Catalogs  CatalogRepository
	Players   PlayerRepository
	News      NewsRepository
	Ownership OwnershipValidator
}
