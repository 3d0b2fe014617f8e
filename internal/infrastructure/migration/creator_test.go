package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Payment Ledger")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_payment_ledger.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_payment_ledger.down.sql"))
	assert.Len(t, mf.Version, 14)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Payment Ledger")

	_, err = os.ReadFile(mf.DownPath)
	require.NoError(t, err)
}

func TestCreateMigrationMissingDir(t *testing.T) {
	dir := t.TempDir() + "/nested/migrations"

	_, err := CreateMigration(dir, "init")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Payment Ledger", "add_payment_ledger"},
		{"fix--double  separators", "fix_double_separators"},
		{"Already_Snake_Case", "already_snake_case"},
		{"trailing punctuation!", "trailing_punctuation"},
		{"v2 schema", "v2_schema"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in), tt.in)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.True(t, strings.HasSuffix(names[0], "_first"))
}

func TestListMigrationsMissingDir(t *testing.T) {
	names, err := ListMigrations(t.TempDir() + "/does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, names)
}
