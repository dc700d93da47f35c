package book

import (
	"context"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	ListAll(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int) (Book, error)
	FilterByRating(ctx context.Context, rating int) ([]Book, error)
	// FilterBy applies only the predicates set in f, so an empty Filter matches
	// every book. GET /books/fetch supplies rating 1 when the caller omits it.
	FilterBy(ctx context.Context, f Filter) ([]Book, error)
	Create(ctx context.Context, candidate Book) (Book, error)
	Update(ctx context.Context, id int, fields Book) error
	Delete(ctx context.Context, id int) error
}
