package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
	"github.com/yukikurage/workspace-task-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func requireConstraint(t *testing.T, err error, name string) {
	t.Helper()
	vErr, ok := apierrors.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, []string{fmt.Sprintf("Constraint %q is violated.", name)}, vErr.Messages)
}

func TestTranslateError_Dialects(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"postgres", &pgconn.PgError{Code: "23505", ConstraintName: ConstraintTagName}},
		{"mysql", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x-1' for key 'tags." + ConstraintTagName + "'"}},
		{"sqlite", errors.New("UNIQUE constraint failed: index '" + ConstraintTagName + "'")},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: ConstraintTagName})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireConstraint(t, TranslateError(tt.err), ConstraintTagName)
		})
	}
}

func TestTranslateError_PassThrough(t *testing.T) {
	require.NoError(t, TranslateError(nil))

	others := []error{
		errors.New("connection reset"),
		&pgconn.PgError{Code: "23503", ConstraintName: "fk_tasks_project"},
		&pgconn.PgError{Code: "23505", ConstraintName: "idx_projects_uuid"},
		&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
		errors.New("UNIQUE constraint failed: users.username"),
	}
	for _, err := range others {
		assert.Same(t, err, TranslateError(err))
	}
}

func TestTranslateError_PostgresInsert(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tags"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: ConstraintTagName})
	mock.ExpectRollback()

	err = TranslateError(db.Create(&models.Tag{Name: "urgent", WorkspaceID: 1}).Error)
	requireConstraint(t, err, ConstraintTagName)
	require.NoError(t, mock.ExpectationsWereMet())
}
