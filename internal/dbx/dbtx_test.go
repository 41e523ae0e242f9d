package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS address (id INTEGER PRIMARY KEY, city TEXT);
		CREATE TABLE IF NOT EXISTS customer_address (address_id INTEGER, customer_id INTEGER);`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestWithTx_CommitsBothWrites(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO address(id, city) VALUES (1, 'Pune')`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO customer_address(address_id, customer_id) VALUES (1, 7)`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, countRows(t, db, "address"))
	require.Equal(t, 1, countRows(t, db, "customer_address"))
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO address(id, city) VALUES (1, 'Pune')`)
		require.NoError(t, e)
		return errors.New("ownership insert failed")
	})
	require.Error(t, err)
	require.Equal(t, 0, countRows(t, db, "address"), "address must not survive a failed unit of work")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, 0, countRows(t, db, "address"), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, e := tx.ExecContext(ctx, `INSERT INTO address(id, city) VALUES (1, 'Pune')`)
		require.NoError(t, e)
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return nil
	})
	require.Error(t, err, "begin should fail when DB is closed")
}

func TestWithTx_CommitErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error { return nil })
	require.EqualError(t, err, "serialization failure")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxResult(t *testing.T) {
	db := setupDB(t)

	n, err := WithTxResult(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO address(id, city) VALUES (1, 'Pune')`); err != nil {
			return 0, err
		}
		var n int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM address`).Scan(&n)
		return n, err
	})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = WithTxResult(context.Background(), db, nil, func(ctx context.Context, tx DBTX) (int, error) {
		return 42, errors.New("boom")
	})
	require.Error(t, err)
	require.Zero(t, n, "value from a rolled back unit of work must not leak")
}
