package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add vendors table", "add_vendors_table"},
		{"Add-Vendors-Table", "add_vendors_table"},
		{"ADD_VENDORS_TABLE", "add_vendors_table"},
		{"add__vendors__table", "add_vendors_table"},
		{"Seed Settings 2", "seed_settings_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_NumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "init schema", "Create the seven tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.down.sql"), first.DownPath)

	upContent, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "Create the seven tables")

	downContent, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")

	second, err := CreateMigration(dir, "Add vendor notes", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)
	assert.FileExists(t, filepath.Join(dir, "000002_add_vendor_notes.up.sql"))
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000010_late.up.sql", "000010_late.down.sql",
		"000002_second.up.sql", "000002_second.down.sql",
		"000001_init.up.sql",
		"README.md",
		"notaversion_x.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

	migrations, err := ListMigrations(dir)

	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, MigrationInfo{Version: 1, Name: "init"}, migrations[0])
	assert.Equal(t, "000002_second", migrations[1].String())
	assert.Equal(t, uint(10), migrations[2].Version)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))

	require.NoError(t, err)
	assert.Empty(t, migrations)
}

func TestBuildStatus(t *testing.T) {
	files := []MigrationInfo{{Version: 1, Name: "init"}, {Version: 2, Name: "seed"}, {Version: 3, Name: "extra"}}

	s := buildStatus(2, false, files)

	assert.Len(t, s.Applied, 2)
	require.Len(t, s.Pending, 1)
	assert.Equal(t, "extra", s.Pending[0].Name)

	fresh := buildStatus(0, false, files)
	assert.Empty(t, fresh.Applied)
	assert.Len(t, fresh.Pending, 3)
}

func TestProjectMigrationsAreWellFormed(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")
	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, uint(i+1), m.Version, "versions must be contiguous")
		assert.FileExists(t, filepath.Join(dir, m.String()+".down.sql"))
	}
}
