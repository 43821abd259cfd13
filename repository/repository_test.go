package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"foodpoint/db"
)

// setupMockDB points the package-level connection at a sqlmock for the test
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	previous := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = previous
		conn.Close()
	})
	return mock
}
