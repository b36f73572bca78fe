package store

import (
	"context"
	"database/sql"
	"errors"

	"bookreview/internal/entity"
	"bookreview/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewPG struct {
	db *pgxpool.Pool
}

func NewReviewPG(db *pgxpool.Pool) *ReviewPG {
	return &ReviewPG{db: db}
}

// Create inserts in a single statement and relies on the book_id foreign
// key: a missing book surfaces as a constraint violation, not a separate
// lookup that could race with a concurrent delete.
func (r *ReviewPG) Create(ctx context.Context, review *entity.Review) error {
	const query = `
	INSERT INTO reviews (id, rating, review, user_id, book_id)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, review.Rating, review.Review, review.UserID, review.BookID).
		Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return usecase.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ReviewPG) GetByID(ctx context.Context, id string) (entity.Review, error) {
	const query = `
	SELECT id, rating, review, user_id, book_id, created_at
	FROM reviews WHERE id = $1 LIMIT 1
	`
	var rev entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(&rev.ID, &rev.Rating, &rev.Review, &rev.UserID, &rev.BookID, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Review{}, usecase.ErrNotFound
		}
		return entity.Review{}, err
	}
	return rev, nil
}

func (r *ReviewPG) ListByBook(ctx context.Context, bookID string) ([]entity.Review, error) {
	const query = `
	SELECT id, rating, review, user_id, book_id, created_at
	FROM reviews
	WHERE book_id = $1
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Review, &rev.UserID, &rev.BookID, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByUser joins books for the title. The sentinel covers reviews whose
// book was removed by an older, non-cascading delete path.
func (r *ReviewPG) ListByUser(ctx context.Context, userID string) ([]entity.UserReview, error) {
	const query = `
	SELECT r.id, r.rating, r.review, r.user_id, r.book_id, r.created_at,
	       COALESCE(b.title, 'Unknown book')
	FROM reviews r
	LEFT JOIN books b ON b.id = r.book_id
	WHERE r.user_id = $1
	ORDER BY r.created_at, r.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.UserReview
	for rows.Next() {
		var rev entity.UserReview
		if err := rows.Scan(&rev.ID, &rev.Rating, &rev.Review, &rev.UserID, &rev.BookID, &rev.CreatedAt, &rev.BookTitle); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewPG) Update(ctx context.Context, id, userID string, patch entity.ReviewPatch) (entity.Review, error) {
	const query = `
	UPDATE reviews
	SET rating = COALESCE($3, rating),
	    review = COALESCE($4, review)
	WHERE id = $1 AND user_id = $2
	RETURNING id, rating, review, user_id, book_id, created_at
	`
	var rev entity.Review
	err := r.db.QueryRow(ctx, query, id, userID, patch.Rating, patch.Review).
		Scan(&rev.ID, &rev.Rating, &rev.Review, &rev.UserID, &rev.BookID, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Review{}, usecase.ErrForbidden
		}
		return entity.Review{}, err
	}
	return rev, nil
}

func (r *ReviewPG) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrForbidden
	}
	return nil
}

func (r *ReviewPG) RatingStats(ctx context.Context, bookID string) (float64, int, error) {
	const query = `
	SELECT AVG(rating)::FLOAT, COUNT(rating)
	FROM reviews
	WHERE book_id = $1
	`
	var average sql.NullFloat64
	var count int
	if err := r.db.QueryRow(ctx, query, bookID).Scan(&average, &count); err != nil {
		return 0, 0, err
	}
	if !average.Valid {
		return 0, 0, nil
	}
	return average.Float64, count, nil
}

func (r *ReviewPG) HasUserReviewed(ctx context.Context, bookID, userID string) (bool, error) {
	const query = `
	SELECT EXISTS (SELECT 1 FROM reviews WHERE book_id = $1 AND user_id = $2)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, bookID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
