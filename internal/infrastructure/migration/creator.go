package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const migrationUpTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: UP

`

const migrationDownTemplate = `-- Migration: %s
-- Created at: %s
-- Direction: DOWN

`

// MigrationFile describes one half of a migration pair on disk
type MigrationFile struct {
	Version   string
	Name      string
	Direction string
	Path      string
}

// CreateMigration writes an empty up/down migration pair into dir.
// Versions are timestamps, so files sort in creation order.
func CreateMigration(dir, name string) ([]MigrationFile, error) {
	sanitized := sanitizeName(name)
	if sanitized == "" {
		return nil, fmt.Errorf("invalid migration name: %q", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	createdAt := now.Format(time.RFC3339)

	files := []MigrationFile{
		{Version: version, Name: sanitized, Direction: "up"},
		{Version: version, Name: sanitized, Direction: "down"},
	}

	for i := range files {
		f := &files[i]
		f.Path = filepath.Join(dir, fmt.Sprintf("%s_%s.%s.sql", f.Version, f.Name, f.Direction))

		template := migrationUpTemplate
		if f.Direction == "down" {
			template = migrationDownTemplate
		}
		content := fmt.Sprintf(template, sanitized, createdAt)

		if err := os.WriteFile(f.Path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}

	return files, nil
}

// ListMigrations returns the migration files in dir sorted by version
func ListMigrations(dir string) ([]MigrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []MigrationFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ".sql")
		direction := ""
		switch {
		case strings.HasSuffix(base, ".up"):
			direction = "up"
			base = strings.TrimSuffix(base, ".up")
		case strings.HasSuffix(base, ".down"):
			direction = "down"
			base = strings.TrimSuffix(base, ".down")
		default:
			continue
		}

		version, name, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}

		files = append(files, MigrationFile{
			Version:   version,
			Name:      name,
			Direction: direction,
			Path:      filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Version != files[j].Version {
			return files[i].Version < files[j].Version
		}
		return files[i].Direction > files[j].Direction
	})

	return files, nil
}

// sanitizeName lowercases the name and keeps only [a-z0-9_]
func sanitizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "_")
}
