package book

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory, insertion-ordered Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	books []Book
}

// NewMemoryStore creates a store holding copies of the given books.
func NewMemoryStore(books ...Book) *MemoryStore {
	s := &MemoryStore{books: make([]Book, len(books))}
	copy(s.books, books)
	return s
}

// NewSeededMemoryStore creates a store preloaded with SeedBooks.
func NewSeededMemoryStore() *MemoryStore {
	return NewMemoryStore(SeedBooks()...)
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int) (Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return Book{}, ErrNotFound
}

func (s *MemoryStore) FilterByRating(ctx context.Context, rating int) ([]Book, error) {
	return s.FilterBy(ctx, Filter{Rating: &rating})
}

func (s *MemoryStore) FilterBy(ctx context.Context, f Filter) ([]Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Book{}
	for _, b := range s.books {
		if f.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// Create ignores candidate.ID and assigns max(existing ids)+1, or 1 when empty.
func (s *MemoryStore) Create(ctx context.Context, candidate Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maxID := 0
	for _, b := range s.books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	candidate.ID = maxID + 1
	s.books = append(s.books, candidate)
	return candidate, nil
}

// Update is a no-op when id is unknown.
func (s *MemoryStore) Update(ctx context.Context, id int, fields Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			applyUpdate(&s.books[i], fields)
		}
	}
	return nil
}

// Delete removes every record with the given id.
func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.books[:0]
	for _, b := range s.books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.books = kept
	return nil
}
