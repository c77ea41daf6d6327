package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "create_orders", "create_orders"},
		{"spaces become underscores", "add factor numbers", "add_factor_numbers"},
		{"hyphens become underscores", "drop-old-index", "drop_old_index"},
		{"uppercase lowered", "CreateCompanies", "createcompanies"},
		{"special characters stripped", "add!@#index", "addindex"},
		{"surrounding whitespace trimmed", "  rename column  ", "rename_column"},
		{"leading underscores trimmed", "__orders__", "orders"},
		{"empty input", "", ""},
		{"only invalid characters", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	files, err := CreateMigration(dir, "create companies")
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "up", files[0].Direction)
	assert.Equal(t, "down", files[1].Direction)
	assert.Equal(t, files[0].Version, files[1].Version)

	for _, f := range files {
		content, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "create_companies")
	}
}

func TestCreateMigration_InvalidName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	files, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "first", files[0].Name)
	assert.Equal(t, "up", files[0].Direction)
	assert.Equal(t, "down", files[1].Direction)
}
