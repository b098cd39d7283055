package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tailorbase/backend/internal/domain/shared"
)

func newMockOrderStatusLineRepository(t *testing.T) (*GormOrderStatusLineRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormOrderStatusLineRepository(gormDB), mock, mockDB
}

func lineRows(id uuid.UUID, orderID string, status string, fitSample bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "order_id", "customer_id", "status", "fit_sample", "size_name"}).
		AddRow(id, orderID, "cust-1", status, fitSample, "Medium")
}

func TestGormOrderStatusLineRepository_FindByID(t *testing.T) {
	t.Run("finds existing line", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		lineID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(lineID, 1).
			WillReturnRows(lineRows(lineID, "ORD-1001", "Start Production", true))

		line, err := repo.FindByID(context.Background(), lineID)

		assert.NoError(t, err)
		assert.NotNil(t, line)
		assert.Equal(t, "ORD-1001", line.OrderID)
		assert.Equal(t, "Start Production", line.Status.String())
		assert.True(t, line.FitSample)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing line", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		lineID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(lineID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		line, err := repo.FindByID(context.Background(), lineID)

		assert.Nil(t, line)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderStatusLineRepository_FindByOrderID(t *testing.T) {
	t.Run("returns lines oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		first := uuid.New()
		second := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "order_id", "customer_id", "status", "fit_sample", "size_name"}).
			AddRow(first, "ORD-1001", "cust-1", "Start Production", true, "Medium").
			AddRow(second, "ORD-1001", "cust-1", "Start Production", false, "Medium")

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE order_id = \$1 ORDER BY created_at ASC`).
			WithArgs("ORD-1001").
			WillReturnRows(rows)

		lines, err := repo.FindByOrderID(context.Background(), "ORD-1001")

		assert.NoError(t, err)
		assert.Len(t, lines, 2)
		assert.Equal(t, first, lines[0].ID)
		assert.True(t, lines[0].FitSample)
		assert.False(t, lines[1].FitSample)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no lines exist", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE order_id = \$1 ORDER BY created_at ASC`).
			WithArgs("ORD-9999").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "customer_id", "status", "fit_sample", "size_name"}))

		lines, err := repo.FindByOrderID(context.Background(), "ORD-9999")

		assert.NoError(t, err)
		assert.Empty(t, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderStatusLineRepository_FindFirstByOrderID(t *testing.T) {
	t.Run("returns the oldest line", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		lineID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE order_id = \$1 ORDER BY created_at ASC,.* LIMIT .*`).
			WithArgs("ORD-1001", 1).
			WillReturnRows(lineRows(lineID, "ORD-1001", "Delivered", true))

		line, err := repo.FindFirstByOrderID(context.Background(), "ORD-1001")

		assert.NoError(t, err)
		assert.Equal(t, lineID, line.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "order_status_lines" WHERE order_id = \$1 ORDER BY created_at ASC,.* LIMIT .*`).
			WithArgs("ORD-9999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		line, err := repo.FindFirstByOrderID(context.Background(), "ORD-9999")

		assert.Nil(t, line)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderStatusLineRepository_SaveAll(t *testing.T) {
	t.Run("empty batch is a no-op", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderStatusLineRepository(t)
		defer mockDB.Close()

		err := repo.SaveAll(context.Background(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
