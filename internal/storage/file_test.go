package storage

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pocket-ledger/pkg/transaction"
)

func TestFileBackend_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	b, err := NewFileBackend(fsys, "/data/ledger")
	require.NoError(t, err)
	s := New(b)
	ctx := context.Background()

	require.NoError(t, s.SaveTransactions(ctx, sampleTransactions()))

	exists, err := afero.Exists(fsys, "/data/ledger/transactions.json")
	require.NoError(t, err)
	assert.True(t, exists)

	txs, err := s.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTransactions(), txs)

	entries, err := afero.ReadDir(fsys, "/data/ledger")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileBackend_MissingFile(t *testing.T) {
	b, err := NewFileBackend(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	_, err = b.Get(context.Background(), KeyCategories)
	assert.ErrorIs(t, err, ErrMissing)
}

func TestFileBackend_FailedWriteKeepsPreviousDocument(t *testing.T) {
	base := afero.NewMemMapFs()
	b, err := NewFileBackend(base, "/data")
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, New(b).SaveTransactions(ctx, sampleTransactions()))

	readOnly := New(&FileBackend{fs: afero.NewReadOnlyFs(base), dir: "/data"})
	err = readOnly.SaveTransactions(ctx, nil)
	assert.ErrorIs(t, err, transaction.ErrStorage)

	txs, err := readOnly.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestFileBackend_CanceledContext(t *testing.T) {
	b, err := NewFileBackend(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Put(ctx, KeyAccounts, []byte("{}")), context.Canceled)
	_, err = b.Get(ctx, KeyAccounts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFile(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.SaveCategories(ctx, []transaction.Category{{ID: "food", Name: "Food"}}))

	categories, err := s.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []transaction.Category{{ID: "food", Name: "Food"}}, categories)
}
