// Package migrate applies ordered SQL schema migrations exactly once each,
// tracked in a migrations_history table. Scripts run in lexicographic
// filename order, so files should carry zero-padded sequence prefixes
// (0001_..., 0002_...). The runner does not make scripts idempotent; scripts
// must tolerate re-execution of their own DDL after a partial failure.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

const historyTable = `
CREATE TABLE IF NOT EXISTS migrations_history (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	run_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Options controls a single migration run.
type Options struct {
	// Reset drops and recreates the public schema before migrating. It is
	// destructive and only ever requested explicitly by the caller.
	Reset bool
}

// Runner applies the SQL scripts found in a filesystem against a database.
type Runner struct {
	db   *sql.DB
	fsys fs.FS
}

// New builds a Runner over the given database handle and script filesystem.
func New(db *sql.DB, fsys fs.FS) *Runner {
	return &Runner{db: db, fsys: fsys}
}

// EnsureHistory creates the tracking table if it does not exist yet.
func (r *Runner) EnsureHistory(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, historyTable); err != nil {
		return fmt.Errorf("creating migrations_history: %w", err)
	}
	return nil
}

// Reset destructively drops and recreates the public schema, wiping every
// table including the migration history.
func (r *Runner) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DROP SCHEMA public CASCADE;"); err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "CREATE SCHEMA public;"); err != nil {
		return fmt.Errorf("recreating schema: %w", err)
	}
	return nil
}

// Run brings the schema up to date. Already-recorded scripts are skipped
// regardless of content. A script that fails aborts the run without being
// recorded, so the next run retries it; scripts applied earlier in the same
// run stay applied.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if opts.Reset {
		if err := r.Reset(ctx); err != nil {
			return err
		}
	}

	if err := r.EnsureHistory(ctx); err != nil {
		return err
	}

	applied, err := r.appliedScripts(ctx)
	if err != nil {
		return err
	}

	names, err := r.scriptNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		if _, ok := applied[name]; ok {
			continue
		}

		contents, err := fs.ReadFile(r.fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(contents)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		// Recorded only after the script succeeds. If this insert fails the
		// script is retried on the next run, which is why scripts must keep
		// their DDL re-runnable.
		if _, err := r.db.ExecContext(ctx, "INSERT INTO migrations_history (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		log.Printf("Applied migration %s", name)
	}

	return nil
}

func (r *Runner) appliedScripts(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM migrations_history")
	if err != nil {
		return nil, fmt.Errorf("loading migration history: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning migration history: %w", err)
		}
		applied[name] = struct{}{}
	}
	return applied, rows.Err()
}

func (r *Runner) scriptNames() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing migration scripts: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
