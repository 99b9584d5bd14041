package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/academia-hq/backend/models"
	"github.com/academia-hq/backend/repositories"
)

// CatalogRepository implements repositories.CatalogRepository for the
// tenant-owned lookup tables. Table names come from the OwnedTable registry.
type CatalogRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *DB, logger *zap.Logger) repositories.CatalogRepository {
	return &CatalogRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all rows of a lookup table within the academy
func (r *CatalogRepository) List(ctx context.Context, table repositories.OwnedTable, academyID int) ([]*models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT id, academia_id, name, created_at, updated_at
		FROM %s
		WHERE academia_id = $1
		ORDER BY name
	`, table.Name)

	rows, err := r.db.QueryContext(ctx, query, academyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table.Name, err)
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		item := &models.CatalogItem{}
		err := rows.Scan(
			&item.ID,
			&item.AcademyID,
			&item.Name,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table.Name, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table.Name, err)
	}

	return items, nil
}

// GetByID retrieves one lookup row within the academy
func (r *CatalogRepository) GetByID(ctx context.Context, table repositories.OwnedTable, academyID, id int) (*models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT id, academia_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1 AND academia_id = $2
	`, table.Name)

	item := &models.CatalogItem{}
	err := r.db.QueryRowContext(ctx, query, id, academyID).Scan(
		&item.ID,
		&item.AcademyID,
		&item.Name,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s row: %w", table.Name, err)
	}

	return item, nil
}

// Create inserts a lookup row under the item's academy
func (r *CatalogRepository) Create(ctx context.Context, table repositories.OwnedTable, item *models.CatalogItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (academia_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, table.Name)

	err := r.db.QueryRowContext(ctx, query,
		item.AcademyID,
		item.Name,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create %s row: %w", table.Name, err)
	}

	r.logger.Debug("catalog row created",
		zap.String("table", table.Name),
		zap.Int("id", item.ID),
		zap.Int("academia_id", item.AcademyID))
	return nil
}

// Update updates a lookup row, scoped by the item's academy
func (r *CatalogRepository) Update(ctx context.Context, table repositories.OwnedTable, item *models.CatalogItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $3,
		    updated_at = $4
		WHERE id = $1 AND academia_id = $2
	`, table.Name)

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.AcademyID,
		item.Name,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s row: %w", table.Name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("catalog row updated",
		zap.String("table", table.Name),
		zap.Int("id", item.ID))
	return nil
}

// Delete removes a lookup row, scoped by academy
func (r *CatalogRepository) Delete(ctx context.Context, table repositories.OwnedTable, academyID, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND academia_id = $2`, table.Name)

	result, err := r.db.ExecContext(ctx, query, id, academyID)
	if err != nil {
		return fmt.Errorf("failed to delete %s row: %w", table.Name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("catalog row deleted",
		zap.String("table", table.Name),
		zap.Int("id", id))
	return nil
}
