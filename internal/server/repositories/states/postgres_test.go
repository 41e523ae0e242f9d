package states

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestGetByUUID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*uuid,\s*state_name\s+FROM\s+state\s+WHERE\s+uuid\s*=\s*\$1\s*$`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "state_name"}).AddRow(int64(1), "s-1", "Kerala"))

	got, err := repo.GetByUUID(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "Kerala", got.Name)
}

func TestGetByUUID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id`).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUUID(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*uuid,\s*state_name\s+FROM\s+state\s+ORDER\s+BY\s+state_name\s*$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "state_name"}).
			AddRow(int64(2), "s-2", "Goa").
			AddRow(int64(1), "s-1", "Kerala"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Goa", got[0].Name)
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id`).WillReturnError(errors.New("timeout"))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, common.ErrStore)
}
