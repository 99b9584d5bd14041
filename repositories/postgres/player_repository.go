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

// PlayerRepository implements the repositories.PlayerRepository interface
type PlayerRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *DB, logger *zap.Logger) repositories.PlayerRepository {
	return &PlayerRepository{
		db:     db,
		logger: logger,
	}
}

const playerColumns = `id, academia_id, first_name, last_name, rut, birth_date,
	position_id, category_id, branch_id, guardian_rut, created_at, updated_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*models.Player, error) {
	player := &models.Player{}
	var positionID, categoryID, branchID sql.NullInt64
	var guardianRut sql.NullString

	err := row.Scan(
		&player.ID,
		&player.AcademyID,
		&player.FirstName,
		&player.LastName,
		&player.Rut,
		&player.BirthDate,
		&positionID,
		&categoryID,
		&branchID,
		&guardianRut,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	player.PositionID = int(positionID.Int64)
	player.CategoryID = int(categoryID.Int64)
	player.BranchID = int(branchID.Int64)
	player.GuardianRut = guardianRut.String
	return player, nil
}

// nullableID maps a zero FK value to NULL
func nullableID(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id > 0}
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create creates a new player under the player's academy
func (r *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (academia_id, first_name, last_name, rut, birth_date,
			position_id, category_id, branch_id, guardian_rut, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		player.AcademyID,
		player.FirstName,
		player.LastName,
		player.Rut,
		player.BirthDate,
		nullableID(player.PositionID),
		nullableID(player.CategoryID),
		nullableID(player.BranchID),
		nullableString(player.GuardianRut),
		player.CreatedAt,
		player.UpdatedAt,
	).Scan(&player.ID)

	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	r.logger.Debug("player created",
		zap.Int("id", player.ID),
		zap.Int("academia_id", player.AcademyID))
	return nil
}

// GetByID retrieves a player by id within the academy
func (r *PlayerRepository) GetByID(ctx context.Context, academyID, id int) (*models.Player, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE id = $1 AND academia_id = $2
	`, playerColumns)

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id, academyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// List retrieves all players of the academy
func (r *PlayerRepository) List(ctx context.Context, academyID int) ([]*models.Player, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE academia_id = $1
		ORDER BY last_name, first_name
	`, playerColumns)

	rows, err := r.db.QueryContext(ctx, query, academyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

// ListByGuardianRut retrieves the players linked to a guardian's rut. This is
// the guardian portal's self-ownership path and deliberately does not filter
// by academy.
func (r *PlayerRepository) ListByGuardianRut(ctx context.Context, rut string) ([]*models.Player, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM players
		WHERE guardian_rut = $1
		ORDER BY last_name, first_name
	`, playerColumns)

	rows, err := r.db.QueryContext(ctx, query, rut)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by guardian: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func collectPlayers(rows *sql.Rows) ([]*models.Player, error) {
	var players []*models.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}

	return players, nil
}

// Update updates a player, scoped by the player's academy
func (r *PlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET first_name = $3,
		    last_name = $4,
		    rut = $5,
		    birth_date = $6,
		    position_id = $7,
		    category_id = $8,
		    branch_id = $9,
		    guardian_rut = $10,
		    updated_at = $11
		WHERE id = $1 AND academia_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.AcademyID,
		player.FirstName,
		player.LastName,
		player.Rut,
		player.BirthDate,
		nullableID(player.PositionID),
		nullableID(player.CategoryID),
		nullableID(player.BranchID),
		nullableString(player.GuardianRut),
		player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("player updated", zap.Int("id", player.ID))
	return nil
}

// Delete deletes a player, scoped by academy
func (r *PlayerRepository) Delete(ctx context.Context, academyID, id int) error {
	query := `DELETE FROM players WHERE id = $1 AND academia_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, academyID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("player deleted", zap.Int("id", id))
	return nil
}
