package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const bookColumns = `id, external_id, isbn, title, author, cover_url, created_at, updated_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.ExternalID, &b.ISBN, &b.Title, &b.Author, &b.CoverURL, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *PostgresRepo) getOne(ctx context.Context, column, value string) (Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE ` + column + ` = $1 LIMIT 1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book by %s: %w", column, err)
	}
	return b, nil
}

func (r *PostgresRepo) GetByExternalID(ctx context.Context, externalID string) (Book, error) {
	return r.getOne(ctx, "external_id", externalID)
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return r.getOne(ctx, "isbn", isbn)
}

// InsertOrGet relies on the unique constraints on external_id and isbn. A
// conflicting insert returns no row, and the winner of the race is read back.
func (r *PostgresRepo) InsertOrGet(ctx context.Context, b Book) (Book, bool, error) {
	const sql = `
		INSERT INTO books (id, external_id, isbn, title, author, cover_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT DO NOTHING
		RETURNING ` + bookColumns

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	stored, err := scanBook(r.db.QueryRow(timeoutCtx, sql, b.ID, b.ExternalID, b.ISBN, b.Title, b.Author, b.CoverURL))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Book{}, false, fmt.Errorf("insert book: %w", err)
	}

	existing, err := r.GetByExternalID(ctx, b.ExternalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) || b.ISBN == nil {
		return Book{}, false, err
	}
	existing, err = r.GetByISBN(ctx, *b.ISBN)
	if err != nil {
		return Book{}, false, err
	}
	// The requested id is not stored, so later lookups of it miss locally.
	log.Warn().
		Str("external_id", b.ExternalID).
		Str("stored_external_id", existing.ExternalID).
		Str("isbn", *b.ISBN).
		Msg("isbn already stored under another external id")
	return existing, false, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	args := []any{}
	if !q.After.IsZero() {
		query += ` WHERE (created_at, id) > ($1, $2)`
		args = append(args, q.After.CreatedAt, q.After.AfterID)
	}
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT $%d`, len(args)+1)
	args = append(args, q.Limit)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
