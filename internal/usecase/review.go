package usecase

import (
	"bookreview/internal/entity"
	"context"
)

//go:generate mockgen -source=review.go -destination=../store/mocks/review_mock.go -package=mocks

type ReviewRepository interface {
	// Create persists a new review. Returns ErrNotFound when the book
	// does not exist. Nothing prevents the same user reviewing the same
	// book twice.
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (entity.Review, error)
	ListByBook(ctx context.Context, bookID string) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID string) ([]entity.UserReview, error)
	Update(ctx context.Context, id, userID string, patch entity.ReviewPatch) (entity.Review, error)
	Delete(ctx context.Context, id, userID string) error

	// RatingStats returns the arithmetic mean of all ratings for the book
	// and how many reviews it has; average is 0 when there are none.
	RatingStats(ctx context.Context, bookID string) (average float64, count int, err error)
	HasUserReviewed(ctx context.Context, bookID, userID string) (bool, error)
}
