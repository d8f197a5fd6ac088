package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/termspage/termspage/internal/terms"
)

// Dialect selects placeholder style and DDL for SQLRepo.
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

func (d Dialect) String() string {
	if d == DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// bind rewrites $N placeholders to ? for sqlite.
func (d Dialect) bind(q string) string {
	if d != DialectSQLite {
		return q
	}
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		if q[i] == '$' {
			j := i + 1
			for j < len(q) && q[j] >= '0' && q[j] <= '9' {
				j++
			}
			if j > i+1 {
				b.WriteByte('?')
				i = j - 1
				continue
			}
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (d Dialect) schema() []string {
	idx := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS terms_lang_slug ON terms (lang, slug)`,
		`CREATE INDEX IF NOT EXISTS terms_lang ON terms (lang)`,
	}
	if d == DialectSQLite {
		return append([]string{`
			CREATE TABLE IF NOT EXISTS terms (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				lang VARCHAR(2) NOT NULL,
				slug VARCHAR(255) NOT NULL,
				title VARCHAR(255) NOT NULL,
				content TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`}, idx...)
	}
	return append([]string{`
		CREATE TABLE IF NOT EXISTS terms (
			id SERIAL PRIMARY KEY,
			lang VARCHAR(2) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`}, idx...)
}

// SQLRepo stores documents in a single "terms" table. The unique index on
// (lang, slug) backs InsertIgnore via ON CONFLICT DO NOTHING, which both
// PostgreSQL and SQLite honour per row without failing the statement.
type SQLRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLRepo creates the table and indexes when missing.
func NewSQLRepo(ctx context.Context, db *sql.DB, dialect Dialect) (*SQLRepo, error) {
	r := &SQLRepo{db: db, dialect: dialect}
	for _, stmt := range dialect.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("migrate terms (%s): %w", dialect, err)
		}
	}
	return r, nil
}

func (r *SQLRepo) Get(ctx context.Context, lang, slug string) (*terms.Document, error) {
	var d terms.Document
	err := r.db.QueryRowContext(ctx, r.dialect.bind(`
		SELECT lang, slug, title, content
		FROM terms
		WHERE lang = $1 AND slug = $2
	`), lang, slug).Scan(&d.Lang, &d.Slug, &d.Title, &d.Content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQLRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLRepo) InsertIgnore(ctx context.Context, docs []terms.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, r.dialect.bind(`
		INSERT INTO terms (lang, slug, title, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lang, slug) DO NOTHING
	`))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, d := range docs {
		res, err := stmt.ExecContext(ctx, d.Lang, d.Slug, d.Title, d.Content)
		if err != nil {
			return 0, fmt.Errorf("insert %s/%s: %w", d.Lang, d.Slug, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *SQLRepo) List(ctx context.Context) ([]*terms.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT lang, slug, title, content FROM terms ORDER BY lang, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*terms.Document{}
	for rows.Next() {
		var d terms.Document
		if err := rows.Scan(&d.Lang, &d.Slug, &d.Title, &d.Content); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *SQLRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM terms`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLRepo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *SQLRepo) Close(_ context.Context) error { return r.db.Close() }
