package usecase

import (
	"bookreview/internal/entity"
	"context"

	"golang.org/x/sync/errgroup"
)

// BookLister joins the book catalog with per-book review aggregates.
// Aggregates are recomputed on every call; there is no caching.
type BookLister struct {
	books   BookRepository
	reviews ReviewRepository
}

func NewBookLister(books BookRepository, reviews ReviewRepository) *BookLister {
	return &BookLister{books: books, reviews: reviews}
}

// ListWithStats returns every book with its average rating and, when
// viewerID is non-empty, whether that viewer already reviewed it. The
// per-book lookups run concurrently; the result keeps catalog order.
func (l *BookLister) ListWithStats(ctx context.Context, viewerID string) ([]entity.BookWithStats, error) {
	books, err := l.books.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.BookWithStats, len(books))
	g, gctx := errgroup.WithContext(ctx)
	for i, book := range books {
		g.Go(func() error {
			average, _, err := l.reviews.RatingStats(gctx, book.ID)
			if err != nil {
				return err
			}
			reviewed := false
			if viewerID != "" {
				reviewed, err = l.reviews.HasUserReviewed(gctx, book.ID, viewerID)
				if err != nil {
					return err
				}
			}
			out[i] = entity.BookWithStats{
				Book:            book,
				AverageRating:   average,
				UserHasReviewed: reviewed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
