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

// NewsRepository implements the repositories.NewsRepository interface
type NewsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *DB, logger *zap.Logger) repositories.NewsRepository {
	return &NewsRepository{
		db:     db,
		logger: logger,
	}
}

// Create creates a news item under the item's academy
func (r *NewsRepository) Create(ctx context.Context, item *models.News) error {
	query := `
		INSERT INTO news (slug, academia_id, title, body, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Slug,
		item.AcademyID,
		item.Title,
		item.Body,
		item.PublishedAt,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("failed to create news item: %w", err)
	}

	r.logger.Debug("news item created",
		zap.Int("id", item.ID),
		zap.Int("academia_id", item.AcademyID))
	return nil
}

// GetByID retrieves a news item within the academy
func (r *NewsRepository) GetByID(ctx context.Context, academyID, id int) (*models.News, error) {
	query := `
		SELECT id, slug, academia_id, title, body, published_at, created_at, updated_at
		FROM news
		WHERE id = $1 AND academia_id = $2
	`

	item := &models.News{}
	err := r.db.QueryRowContext(ctx, query, id, academyID).Scan(
		&item.ID,
		&item.Slug,
		&item.AcademyID,
		&item.Title,
		&item.Body,
		&item.PublishedAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news item: %w", err)
	}

	return item, nil
}

// List retrieves all news items of the academy, newest first
func (r *NewsRepository) List(ctx context.Context, academyID int) ([]*models.News, error) {
	query := `
		SELECT id, slug, academia_id, title, body, published_at, created_at, updated_at
		FROM news
		WHERE academia_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, academyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	var items []*models.News
	for rows.Next() {
		item := &models.News{}
		err := rows.Scan(
			&item.ID,
			&item.Slug,
			&item.AcademyID,
			&item.Title,
			&item.Body,
			&item.PublishedAt,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating news rows: %w", err)
	}

	return items, nil
}

// Update updates a news item, scoped by the item's academy
func (r *NewsRepository) Update(ctx context.Context, item *models.News) error {
	query := `
		UPDATE news
		SET title = $3,
		    body = $4,
		    published_at = $5,
		    updated_at = $6
		WHERE id = $1 AND academia_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.AcademyID,
		item.Title,
		item.Body,
		item.PublishedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("news item updated", zap.Int("id", item.ID))
	return nil
}

// Delete deletes a news item, scoped by academy
func (r *NewsRepository) Delete(ctx context.Context, academyID, id int) error {
	query := `DELETE FROM news WHERE id = $1 AND academia_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, academyID)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("news item deleted", zap.Int("id", id))
	return nil
}
