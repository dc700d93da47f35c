package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAll returns every book in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	return s.repo.ListAll(ctx)
}

// GetByID returns a book by its id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// FilterByRating returns the books with the given rating.
func (s *Service) FilterByRating(ctx context.Context, rating int) ([]Book, error) {
	return s.repo.FilterByRating(ctx, rating)
}

// FilterBy returns the books matching every predicate set in f.
func (s *Service) FilterBy(ctx context.Context, f Filter) ([]Book, error) {
	return s.repo.FilterBy(ctx, f)
}

// Create stores a new book and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, candidate Book) (Book, error) {
	candidate.ID = 0
	return s.repo.Create(ctx, candidate)
}

// Update overwrites title, author, description and rating of the book with the given id.
func (s *Service) Update(ctx context.Context, id int, fields Book) error {
	return s.repo.Update(ctx, id, fields)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
