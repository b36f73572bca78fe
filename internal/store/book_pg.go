package store

import (
	"context"
	"errors"

	"bookreview/internal/entity"
	"bookreview/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	const query = `
	SELECT id, title, author, year, genre, added_by, created_at, updated_at
	FROM books
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *BookPG) ListByOwner(ctx context.Context, ownerID string) ([]entity.Book, error) {
	const query = `
	SELECT id, title, author, year, genre, added_by, created_at, updated_at
	FROM books
	WHERE added_by = $1
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `
	SELECT id, title, author, year, genre, added_by, created_at, updated_at
	FROM books WHERE id = $1 LIMIT 1
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author, year, genre, added_by)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, b.Title, b.Author, b.Year, b.Genre, b.AddedBy).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) Update(ctx context.Context, id, ownerID string, patch entity.BookPatch) (entity.Book, error) {
	const query = `
	UPDATE books
	SET title     = COALESCE($3, title),
	    author    = COALESCE($4, author),
	    year      = COALESCE($5, year),
	    genre     = COALESCE($6, genre),
	    updated_at = NOW()
	WHERE id = $1 AND added_by = $2
	RETURNING id, title, author, year, genre, added_by, created_at, updated_at
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Author, patch.Year, patch.Genre).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrForbidden
		}
		return entity.Book{}, err
	}
	return b, nil
}

// Delete removes the book and its reviews in one transaction, reviews
// first, so a failure mid-sequence cannot leave a review pointing at a
// book that no longer exists.
func (r *BookPG) Delete(ctx context.Context, id, ownerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM reviews WHERE book_id IN (SELECT id FROM books WHERE id = $1 AND added_by = $2)`,
		id, ownerID,
	); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1 AND added_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrForbidden
	}
	return tx.Commit(ctx)
}

func scanBooks(rows pgx.Rows) ([]entity.Book, error) {
	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.AddedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
