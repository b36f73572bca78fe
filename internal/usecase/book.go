package usecase

import (
	"bookreview/internal/entity"
	"context"
)

//go:generate mockgen -source=book.go -destination=../store/mocks/book_mock.go -package=mocks

type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Book, error)
	GetByID(ctx context.Context, id string) (entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	// Update applies only the fields set in the patch. Returns ErrForbidden
	// when no book with that id is owned by ownerID.
	Update(ctx context.Context, id, ownerID string, patch entity.BookPatch) (entity.Book, error)
	// Delete removes the book and every review referencing it in one
	// transaction, reviews first. Returns ErrForbidden when not owned.
	Delete(ctx context.Context, id, ownerID string) error
}
