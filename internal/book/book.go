package book

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// PublishedLayout is the date layout of Book.Published.
const PublishedLayout = "2006-01-02"

// Book represents a catalog record. ID is assigned by the store.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Published   string `json:"published"`
}

// Filter holds optional exact-match predicates. A nil field is not applied.
type Filter struct {
	Title     *string
	Author    *string
	Rating    *int
	Published *string
}

// Matches reports whether b satisfies every non-nil predicate of f.
func (f Filter) Matches(b Book) bool {
	if f.Title != nil && b.Title != *f.Title {
		return false
	}
	if f.Author != nil && b.Author != *f.Author {
		return false
	}
	if f.Rating != nil && b.Rating != *f.Rating {
		return false
	}
	if f.Published != nil && b.Published != *f.Published {
		return false
	}
	return true
}

// applyUpdate copies the updatable fields of src onto dst.
// Published is left untouched.
func applyUpdate(dst *Book, src Book) {
	dst.Title = src.Title
	dst.Author = src.Author
	dst.Description = src.Description
	dst.Rating = src.Rating
}

// SeedBooks returns the initial catalog.
func SeedBooks() []Book {
	ratings := []int{5, 4, 2, 6, 3, 6, 6, 4, 3, 2, 1}
	books := make([]Book, 0, len(ratings))
	for i, rating := range ratings {
		n := i + 1
		title := fmt.Sprintf("Title %d", n)
		if n == 7 {
			title = "Title7"
		}
		books = append(books, Book{
			ID:          n,
			Title:       title,
			Author:      fmt.Sprintf("Author %d", n),
			Description: fmt.Sprintf("Description %d", n),
			Rating:      rating,
			Published:   fmt.Sprintf("%d-01-01", 2011+n),
		})
	}
	return books
}
