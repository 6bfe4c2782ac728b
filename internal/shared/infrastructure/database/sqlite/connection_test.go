package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
)

func openMemory(t *testing.T) database.Connection {
	t.Helper()
	conn, err := NewConnection(context.Background(), database.Config{SQLitePath: MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewConnection_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "clinic.db")

	conn, err := NewConnection(ctx, database.Config{SQLitePath: path})
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.Ping(ctx))
	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.FileExists(t, path)
}

func TestOpen_RegisteredDriver(t *testing.T) {
	conn, err := database.Open(context.Background(), database.Config{Driver: database.DriverSQLite, SQLitePath: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, database.DriverSQLite, conn.Driver())
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn := openMemory(t)

	_, err := conn.Exec(ctx, `CREATE TABLE visits (id TEXT PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)

	affected, err := conn.Exec(ctx, `INSERT INTO visits (id, name) VALUES (?, ?), (?, ?)`, "1", "Alex", "2", "Bernice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var name string
	require.NoError(t, conn.QueryRow(ctx, `SELECT name FROM visits WHERE id = ?`, "1").Scan(&name))
	assert.Equal(t, "Alex", name)

	rows, err := conn.Query(ctx, `SELECT name FROM visits ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	assert.NoError(t, rows.Err())
	assert.Equal(t, []string{"Alex", "Bernice"}, names)

	err = conn.QueryRow(ctx, `SELECT name FROM visits WHERE id = ?`, "3").Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := openMemory(t)
	uow := database.NewUnitOfWork(conn)

	_, err := conn.Exec(ctx, `CREATE TABLE visits (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM visits`).Scan(&n))
		return n
	}

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO visits (id) VALUES (?)`, "1")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, 1, count())

	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	nestedCtx, err := uow.Begin(txCtx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(nestedCtx, conn).Exec(nestedCtx, `INSERT INTO visits (id) VALUES (?)`, "2")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(nestedCtx))
	require.NoError(t, uow.Rollback(txCtx))
	assert.Equal(t, 1, count())

	assert.ErrorIs(t, uow.Commit(ctx), database.ErrNoTransaction)
}
