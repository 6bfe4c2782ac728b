// Package migrations creates the clinic schema for each supported driver.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/felixgeelhaar/clinicdesk/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// Run applies every .up.sql migration for the connection's driver in file name order.
// Statements use IF NOT EXISTS, so running again is harmless.
func Run(ctx context.Context, conn database.Connection) error {
	dir := conn.Driver().String()
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations for %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	slices.Sort(files)

	for _, file := range files {
		contents, err := migrationsFS.ReadFile(dir + "/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		for _, stmt := range statements(string(contents)) {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
		}
	}
	return nil
}

// statements splits a migration file on semicolons. Migrations contain no string literals with semicolons.
func statements(contents string) []string {
	var out []string
	for _, stmt := range strings.Split(contents, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
