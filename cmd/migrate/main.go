package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/fixora/insights/internal/adapter/persistence"
	"github.com/fixora/insights/internal/config"
)

type migrationFile struct {
	version int
	name    string
	path    string
	kind    string // up or down
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "up", "migration mode: up or down")
	dir := flag.String("dir", cfg.Database.MigrationsPath, "migrations directory")
	steps := flag.Int("steps", 0, "number of migrations to revert in down mode (0 = all)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := persistence.OpenPostgres(ctx, cfg.GetDatabaseURL(), persistence.PoolConfig{MaxConnections: 1})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	files, err := loadMigrationFiles(*dir)
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	switch strings.ToLower(*mode) {
	case "up":
		n, err := applyUp(ctx, db, files)
		if err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Printf("Migration up completed: %d applied", n)
	case "down":
		n, err := applyDown(ctx, db, files, *steps)
		if err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Printf("Migration down completed: %d reverted", n)
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// loadMigrationFiles reads NNN_name.up.sql / NNN_name.down.sql pairs, sorted by version
func loadMigrationFiles(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, ok := parseMigrationName(e.Name())
		if !ok {
			log.Printf("skip file without version prefix: %s", e.Name())
			continue
		}
		f.path = filepath.Join(dir, e.Name())
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

func parseMigrationName(filename string) (migrationFile, bool) {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".sql") {
		return migrationFile{}, false
	}

	kind := "up"
	base := strings.TrimSuffix(lower, ".sql")
	switch {
	case strings.HasSuffix(base, ".down"):
		kind = "down"
		base = strings.TrimSuffix(base, ".down")
	case strings.HasSuffix(base, ".up"):
		base = strings.TrimSuffix(base, ".up")
	}

	prefix, name, found := strings.Cut(base, "_")
	if !found {
		return migrationFile{}, false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return migrationFile{}, false
	}
	return migrationFile{version: version, name: name, kind: kind}, true
}

func alreadyApplied(ctx context.Context, db *sql.DB, version int) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version=$1)", version).Scan(&exists)
	return exists, err
}

func applyUp(ctx context.Context, db *sql.DB, files []migrationFile) (int, error) {
	applied := 0
	for _, f := range files {
		if f.kind != "up" {
			continue
		}
		done, err := alreadyApplied(ctx, db, f.version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		log.Printf("Applying up %03d: %s", f.version, f.name)
		err = execInTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, name, applied_at) VALUES($1,$2,$3)", f.version, f.name, time.Now())
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("failed applying %s: %w", f.path, err)
		}
		applied++
	}
	return applied, nil
}

func applyDown(ctx context.Context, db *sql.DB, files []migrationFile, steps int) (int, error) {
	var downs []migrationFile
	for _, f := range files {
		if f.kind == "down" {
			downs = append(downs, f)
		}
	}
	sort.Slice(downs, func(i, j int) bool { return downs[i].version > downs[j].version })

	reverted := 0
	for _, f := range downs {
		if steps > 0 && reverted >= steps {
			break
		}
		done, err := alreadyApplied(ctx, db, f.version)
		if err != nil {
			return reverted, err
		}
		if !done {
			continue
		}

		log.Printf("Reverting down %03d: %s", f.version, f.name)
		err = execInTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version=$1", f.version)
			return err
		})
		if err != nil {
			return reverted, fmt.Errorf("failed reverting %s: %w", f.path, err)
		}
		reverted++
	}
	return reverted, nil
}

// execInTx runs the SQL file and the bookkeeping statement atomically
func execInTx(ctx context.Context, db *sql.DB, path string, record func(*sql.Tx) error) error {
	script, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return err
	}
	if err := record(tx); err != nil {
		return err
	}
	return tx.Commit()
}
