package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestKVRepo_Get(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedValue string
		expectedFound bool
		expectedError bool
	}{
		{
			name:          "key exists",
			key:           "translationHistory",
			mockRows:      sqlmock.NewRows([]string{"value"}).AddRow(`[{"original":"hello"}]`),
			mockError:     nil,
			expectedValue: `[{"original":"hello"}]`,
			expectedFound: true,
			expectedError: false,
		},
		{
			name:          "key missing",
			key:           "translationHistory",
			mockRows:      nil,
			mockError:     sql.ErrNoRows,
			expectedValue: "",
			expectedFound: false,
			expectedError: false,
		},
		{
			name:          "database error",
			key:           "translationHistory",
			mockRows:      nil,
			mockError:     fmt.Errorf("connection reset"),
			expectedValue: "",
			expectedFound: false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewKVRepo(db)

			query := "SELECT value FROM kv_store WHERE key = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.key).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.key).WillReturnRows(tt.mockRows)
			}

			value, found, err := repo.Get(context.Background(), tt.key)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedValue, value)
			assert.Equal(t, tt.expectedFound, found)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepo_Set(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful upsert",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewKVRepo(db)

			exp := mock.ExpectExec("INSERT INTO kv_store").WithArgs("translationHistory", "[]")
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err = repo.Set(context.Background(), "translationHistory", "[]")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("DELETE FROM kv_store WHERE key = \\$1").
		WithArgs("translationHistory:42").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), "translationHistory:42")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepo_DeleteError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewKVRepo(db)

	mock.ExpectExec("DELETE FROM kv_store").
		WithArgs("translationHistory").
		WillReturnError(fmt.Errorf("db error"))

	err = repo.Delete(context.Background(), "translationHistory")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "translationHistory")
	assert.NoError(t, mock.ExpectationsWereMet())
}
