package postgres

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/academia-hq/backend/repositories"
)

// identifierPattern restricts table and column names interpolated into the
// existence query. The names come from the fixed OwnedTable registry, never
// from request input; the check guards against future registry mistakes.
var identifierPattern = regexp.MustCompile(`^[a-z_]+$`)

// OwnershipRepository implements repositories.OwnershipValidator with a
// scoped existence read.
type OwnershipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewOwnershipRepository creates a new ownership validator
func NewOwnershipRepository(db *DB, logger *zap.Logger) repositories.OwnershipValidator {
	return &OwnershipRepository{
		db:     db,
		logger: logger,
	}
}

// ValidateOwned confirms that a row with the id exists under the academy.
// A missing row and a row owned by a different academy both return
// repositories.ErrNotFound; callers cannot tell the two apart.
func (r *OwnershipRepository) ValidateOwned(ctx context.Context, table repositories.OwnedTable, id, academyID int) error {
	if !identifierPattern.MatchString(table.Name) || !identifierPattern.MatchString(table.TenantColumn) {
		return fmt.Errorf("invalid owned table registration: %q/%q", table.Name, table.TenantColumn)
	}

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND %s = $2)`,
		table.Name, table.TenantColumn,
	)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id, academyID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to validate ownership on %s: %w", table.Name, err)
	}

	if !exists {
		r.logger.Debug("owned reference rejected",
			zap.String("table", table.Name),
			zap.Int("id", id),
			zap.Int("academia_id", academyID))
		return repositories.ErrNotFound
	}

	return nil
}
