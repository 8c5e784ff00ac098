package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"textquiz/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded migration files as a golang-migrate source.
func Migrations() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Execer is the subset of *sql.DB and *sqlx.DB used by the migrator.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Migrator applies golang-migrate style versioned files. golang-migrate ships
// no Oracle database driver, so versions are tracked here in schema_migrations
// and only the source side of the library is used.
type Migrator struct {
	db  Execer
	src source.Driver
}

func NewMigrator(db Execer, src source.Driver) *Migrator {
	return &Migrator{db: db, src: src}
}

// RunMigrations applies all pending embedded up migrations.
func RunMigrations(ctx context.Context, db Execer) (int, error) {
	src, err := Migrations()
	if err != nil {
		return 0, fmt.Errorf("could not open migrations: %w", err)
	}
	defer src.Close()
	return NewMigrator(db, src).Up(ctx)
}

// Up applies every migration not yet recorded, in version order, and
// returns how many were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	version, err := m.src.First()
	for err == nil {
		if _, done := applied[version]; !done {
			if err := m.apply(ctx, version); err != nil {
				return count, err
			}
			count++
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}
	return count, nil
}

// Down reverts the latest applied migration. It returns false when nothing
// was applied.
func (m *Migrator) Down(ctx context.Context) (bool, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return false, err
	}
	var version sql.NullInt64
	if err := m.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		return false, fmt.Errorf("could not read current version: %w", err)
	}
	if !version.Valid {
		return false, nil
	}
	v := uint(version.Int64)

	r, name, err := m.src.ReadDown(v)
	if err != nil {
		return false, fmt.Errorf("could not read down migration %d: %w", v, err)
	}
	if err := m.execFile(ctx, r, name); err != nil {
		return false, err
	}
	if _, err := m.db.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = :1", v); err != nil {
		return false, fmt.Errorf("could not unrecord migration %d: %w", v, err)
	}
	logger.Get().Info("Reverted migration", zap.Uint("version", v), zap.String("name", name))
	return true, nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	var n int
	err := m.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'").Scan(&n)
	if err != nil {
		return fmt.Errorf("could not inspect schema_migrations: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err = m.db.ExecContext(ctx,
		"CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, dirty NUMBER(1) DEFAULT 0 NOT NULL)")
	if err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[uint]struct{}, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("could not read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[uint]struct{})
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[uint(v)] = struct{}{}
	}
	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, version uint) error {
	r, name, err := m.src.ReadUp(version)
	if errors.Is(err, fs.ErrNotExist) {
		// Down-only version; nothing to apply but record it.
		name = ""
	} else if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	} else if err := m.execFile(ctx, r, name); err != nil {
		return err
	}

	if _, err := m.db.ExecContext(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (:1, 0)", version); err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}
	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", name))
	return nil
}

func (m *Migrator) execFile(ctx context.Context, r io.ReadCloser, name string) error {
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read migration file %s: %w", name, err)
	}
	for _, stmt := range SplitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
	}
	return nil
}

// SplitStatements splits a migration file on semicolons ending a line.
// Oracle drivers execute one statement per call and reject the trailing
// semicolon.
func SplitStatements(content string) []string {
	var stmts []string
	var cur strings.Builder
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(trimmed, ";"))
			stmts = append(stmts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(trimmed)
		cur.WriteString(" ")
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
