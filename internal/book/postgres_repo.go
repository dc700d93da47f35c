package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableBooks     = "books"
	colID          = "id"
	colTitle       = "title"
	colAuthor      = "author"
	colDescription = "description"
	colRating      = "rating"
	colPublished   = "published"
)

var dialect = goqu.Dialect("postgres")

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

func selectBooks() *goqu.SelectDataset {
	return dialect.
		From(tableBooks).
		Prepared(true).
		Select(colID, colTitle, colAuthor, colDescription, colRating, colPublished).
		Order(goqu.I(colID).Asc())
}

// buildFilterQuery turns the non-nil predicates of f into WHERE conditions.
func buildFilterQuery(f Filter) (string, []any, error) {
	ds := selectBooks()
	if f.Title != nil {
		ds = ds.Where(goqu.C(colTitle).Eq(*f.Title))
	}
	if f.Author != nil {
		ds = ds.Where(goqu.C(colAuthor).Eq(*f.Author))
	}
	if f.Rating != nil {
		ds = ds.Where(goqu.C(colRating).Eq(*f.Rating))
	}
	if f.Published != nil {
		ds = ds.Where(goqu.C(colPublished).Eq(*f.Published))
	}
	return ds.ToSQL()
}

func (r *PostgresRepo) query(ctx context.Context, sql string, args ...any) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Rating, &b.Published); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Book, error) {
	return r.FilterBy(ctx, Filter{})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int) (Book, error) {
	const query = `
		SELECT id, title, author, description, rating, published
		FROM books
		WHERE id = $1
		ORDER BY id
		LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Rating, &b.Published,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) FilterByRating(ctx context.Context, rating int) ([]Book, error) {
	return r.FilterBy(ctx, Filter{Rating: &rating})
}

func (r *PostgresRepo) FilterBy(ctx context.Context, f Filter) ([]Book, error) {
	sql, args, err := buildFilterQuery(f)
	if err != nil {
		return nil, fmt.Errorf("build filter query: %w", err)
	}
	return r.query(ctx, sql, args...)
}

// Create assigns max(id)+1 under a table lock so concurrent creates cannot pick the same id.
func (r *PostgresRepo) Create(ctx context.Context, candidate Book) (Book, error) {
	const insertSQL = `
		INSERT INTO books (id, title, author, description, rating, published)
		SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5 FROM books
		RETURNING id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return Book{}, fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback(timeoutCtx) }()

	if _, err := tx.Exec(timeoutCtx, "LOCK TABLE books IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return Book{}, fmt.Errorf("lock books: %w", err)
	}
	if err := tx.QueryRow(timeoutCtx, insertSQL,
		candidate.Title, candidate.Author, candidate.Description, candidate.Rating, candidate.Published,
	).Scan(&candidate.ID); err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	if err := tx.Commit(timeoutCtx); err != nil {
		return Book{}, fmt.Errorf("commit create: %w", err)
	}
	return candidate, nil
}

// Update leaves published unchanged, matching MemoryStore.
func (r *PostgresRepo) Update(ctx context.Context, id int, fields Book) error {
	const sql = `
		UPDATE books
		SET title = $2, author = $3, description = $4, rating = $5
		WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, sql, id, fields.Title, fields.Author, fields.Description, fields.Rating); err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
