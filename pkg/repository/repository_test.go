package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
)

func testDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "test.db") + "?mode=rwc&_txlock=immediate"
}

func TestNew(t *testing.T) {
	dsn := testDSN(t)
	store, err := New(context.Background(), Config{DSN: dsn, Source: "hn"})
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))

	var ver string
	require.NoError(t, store.db.Get(&ver, "SELECT value FROM meta WHERE key = 'schema_version'"))
	assert.Equal(t, "1", ver)
	require.NoError(t, store.Close())

	// reopen keeps the existing database
	store, err = New(context.Background(), Config{DSN: dsn, Source: "hn"})
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestNew_Errors(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		_, err := New(context.Background(), Config{DSN: testDSN(t)})
		require.Error(t, err)
	})

	t.Run("unknown schema version", func(t *testing.T) {
		dsn := testDSN(t)
		store, err := New(context.Background(), Config{DSN: dsn, Source: "hn"})
		require.NoError(t, err)
		_, err = store.db.Exec("UPDATE meta SET value = '7' WHERE key = 'schema_version'")
		require.NoError(t, err)
		require.NoError(t, store.Close())

		_, err = New(context.Background(), Config{DSN: dsn, Source: "hn"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStateCorrupt))
	})

	t.Run("not a database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.db")
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not an sqlite database "), 200), 0o600))

		_, err := New(context.Background(), Config{DSN: "file:" + path, Source: "hn"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStateCorrupt), "got %v", err)
	})
}

func TestCriticalError(t *testing.T) {
	originalErr := fmt.Errorf("test error message")
	critErr := &criticalError{err: originalErr}

	assert.Equal(t, "test error message", critErr.Error())
	assert.True(t, errors.Is(critErr, errCritical))
	assert.True(t, errors.Is(critErr, originalErr))
	assert.False(t, errors.Is(originalErr, errCritical))
}

func TestIsLockError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "sqlite busy error", err: fmt.Errorf("SQLITE_BUSY: database is busy"), want: true},
		{name: "database locked error", err: fmt.Errorf("database is locked"), want: true},
		{name: "table locked error", err: fmt.Errorf("database table is locked"), want: true},
		{name: "non-lock error", err: fmt.Errorf("syntax error"), want: false},
		{name: "empty error message", err: fmt.Errorf(""), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLockError(tt.err))
		})
	}
}

func TestIsCorruptError(t *testing.T) {
	assert.False(t, isCorruptError(nil))
	assert.True(t, isCorruptError(fmt.Errorf("file is not a database (26)")))
	assert.True(t, isCorruptError(fmt.Errorf("database disk image is malformed")))
	assert.False(t, isCorruptError(fmt.Errorf("no such table: foo")))
}
