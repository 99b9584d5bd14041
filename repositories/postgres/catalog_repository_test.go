package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/academia-hq/backend/models"
	"github.com/academia-hq/backend/repositories"
)

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("list is scoped by academy", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCatalogRepository(db, zap.NewNop())

		rows := sqlmock.NewRows([]string{"id", "academia_id", "name", "created_at", "updated_at"}).
			AddRow(1, 5, "Defender", now, now).
			AddRow(2, 5, "Forward", now, now)

		mock.ExpectQuery(`SELECT id, academia_id, name, created_at, updated_at\s+FROM positions\s+WHERE academia_id = \$1`).
			WithArgs(5).
			WillReturnRows(rows)

		items, err := repo.List(ctx, repositories.TablePositions, 5)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Defender", items[0].Name)
		assert.Equal(t, 5, items[0].AcademyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get outside the academy returns not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCatalogRepository(db, zap.NewNop())

		mock.ExpectQuery(`FROM categories`).
			WithArgs(3, 9).
			WillReturnRows(sqlmock.NewRows([]string{"id", "academia_id", "name", "created_at", "updated_at"}))

		_, err := repo.GetByID(ctx, repositories.TableCategories, 9, 3)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("create returns the generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCatalogRepository(db, zap.NewNop())

		item := &models.CatalogItem{AcademyID: 5, Name: "Goalkeeper", CreatedAt: now, UpdatedAt: now}

		mock.ExpectQuery(`INSERT INTO positions`).
			WithArgs(5, "Goalkeeper", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		require.NoError(t, repo.Create(ctx, repositories.TablePositions, item))
		assert.Equal(t, 7, item.ID)
	})

	t.Run("update outside the academy returns not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCatalogRepository(db, zap.NewNop())

		item := &models.CatalogItem{ID: 7, AcademyID: 9, Name: "Renamed", UpdatedAt: now}

		mock.ExpectExec(`UPDATE positions`).
			WithArgs(7, 9, "Renamed", now).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, repositories.TablePositions, item)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("delete is scoped by academy", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewCatalogRepository(db, zap.NewNop())

		mock.ExpectExec(`DELETE FROM branches WHERE id = \$1 AND academia_id = \$2`).
			WithArgs(4, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, repositories.TableBranches, 5, 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
