package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pocket-ledger/pkg/transaction"
)

func TestMainFunction(t *testing.T) {
	assert.NotNil(t, rootCmd, "rootCmd should be defined")
	assert.Equal(t, "pocket-ledger", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "Track, categorize")
	assert.Contains(t, rootCmd.Long, "Pocket Ledger")

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "add", "update", "delete", "get", "list", "summary", "accounts", "categories"})
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POCKET_LEDGER_STORAGE_BACKEND", "file")
	t.Setenv("POCKET_LEDGER_STORAGE_DIR", t.TempDir())
	t.Setenv("POCKET_LEDGER_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) transaction.Transaction {
	t.Helper()
	var tx transaction.Transaction
	require.NoError(t, json.Unmarshal([]byte(out), &tx))
	return tx
}

func TestCRUDCommands(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "add", "--amount", "42.5", "--type", "expense", "--from", "checking",
		"--category", "food", "--description", "Dinner", "--at", "2024-05-01",
		"--attach", "img-2", "--attach", "img-1")
	require.NoError(t, err)
	created := decode(t, out)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 42.5, created.Amount)
	assert.Equal(t, []string{"img-2", "img-1"}, created.Attachments)

	out, err = run(t, "get", created.ID)
	require.NoError(t, err)
	got := decode(t, out)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))

	out, err = run(t, "update", created.ID, "--amount", "40", "--note", "tip excluded")
	require.NoError(t, err)
	updated := decode(t, out)
	assert.Equal(t, 40.0, updated.Amount)
	assert.Equal(t, "tip excluded", updated.Note)
	assert.Equal(t, "Dinner", updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	out, err = run(t, "delete", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+created.ID)

	_, err = run(t, "get", created.ID)
	assert.ErrorIs(t, err, transaction.ErrNotFound)

	_, err = run(t, "delete", created.ID)
	assert.NoError(t, err, "deleting twice is not an error")
}

func TestAddCommand_AttachmentWithComma(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "add", "--amount", "3", "--type", "expense", "--from", "checking",
		"--category", "food", "--attach", "data:image/png;base64,AAA", "--attach", "https://img.local/a?x=1,2")
	require.NoError(t, err)
	created := decode(t, out)
	assert.Equal(t, []string{"data:image/png;base64,AAA", "https://img.local/a?x=1,2"}, created.Attachments)

	out, err = run(t, "update", created.ID, "--attach", "b,c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b,c"}, decode(t, out).Attachments)

	out, err = run(t, "get", created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b,c"}, decode(t, out).Attachments)
}

func TestAddCommand_Validation(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "--amount", "0", "--type", "expense", "--from", "checking", "--category", "food")
	assert.ErrorIs(t, err, transaction.ErrValidation)

	_, err = run(t, "add", "--amount", "10", "--type", "income", "--category", "salary")
	assert.ErrorIs(t, err, transaction.ErrValidation)

	_, err = run(t, "add", "--amount", "10", "--type", "gift")
	assert.ErrorContains(t, err, "unknown transaction type")

	_, err = run(t, "add", "--amount", "10", "--type", "expense", "--from", "a", "--category", "x", "--at", "yesterday")
	assert.ErrorContains(t, err, "invalid timestamp")
}

func TestListAndSummaryCommands(t *testing.T) {
	setupEnv(t)

	for _, args := range [][]string{
		{"--amount", "100", "--type", "expense", "--from", "a", "--category", "food", "--at", "2024-05-01"},
		{"--amount", "200", "--type", "income", "--to", "a", "--category", "salary", "--at", "2024-05-02"},
		{"--amount", "50", "--type", "expense", "--from", "a", "--category", "transport", "--at", "2024-05-03"},
		{"--amount", "300", "--type", "transfer", "--from", "a", "--to", "b", "--category", "savings", "--at", "2024-05-04"},
	} {
		_, err := run(t, append([]string{"add"}, args...)...)
		require.NoError(t, err)
	}

	out, err := run(t, "list", "--type", "expense", "--sort", "highest")
	require.NoError(t, err)
	assert.Contains(t, out, "active filters: 1")
	first := bytes.Index([]byte(out), []byte("100.00"))
	second := bytes.Index([]byte(out), []byte("50.00"))
	require.Positive(t, first)
	require.Positive(t, second)
	assert.Less(t, first, second)
	assert.NotContains(t, out, "300.00")

	out, err = run(t, "list", "--category", "food", "--category", "salary")
	require.NoError(t, err)
	assert.Contains(t, out, "active filters: 2")
	assert.NotContains(t, out, "transport")

	_, err = run(t, "list", "--sort", "alphabetical")
	assert.ErrorContains(t, err, "unknown sort mode")

	out, err = run(t, "summary")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "200", summary["income"])
	assert.Equal(t, "150", summary["expense"])
	assert.Equal(t, "50", summary["net"])
	assert.Equal(t, 4.0, summary["count"])
}

func TestInitAndCategorization(t *testing.T) {
	setupEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
default_category = "other"

[[categories]]
pattern = "coffee|cafe"
category = "eating-out"

[[accounts]]
id = "checking"
name = "Checking"

[[category_list]]
id = "eating-out"
name = "Eating out"

[[category_list]]
id = "other"
name = "Other"
`), 0644))

	out, err := run(t, "--config", configPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "1 accounts, 2 categories, 0 transactions")

	out, err = run(t, "--config", configPath, "add", "--amount", "4.5", "--type", "expense",
		"--from", "checking", "--description", "Corner Cafe")
	require.NoError(t, err)
	assert.Equal(t, "eating-out", decode(t, out).Category)

	out, err = run(t, "--config", configPath, "add", "--amount", "12", "--type", "expense",
		"--from", "checking", "--description", "Bookshop")
	require.NoError(t, err)
	assert.Equal(t, "other", decode(t, out).Category)

	_, err = run(t, "--config", configPath, "add", "--amount", "12", "--type", "expense",
		"--from", "brokerage", "--category", "other")
	assert.ErrorContains(t, err, "unknown account")

	out, err = run(t, "--config", configPath, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, `"checking"`)

	out, err = run(t, "--config", configPath, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, `"eating-out"`)
}

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), ts)

	ts, err = parseTimestamp("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, time.May, ts.Month())

	_, err = parseTimestamp("May 1st")
	assert.Error(t, err)
}
