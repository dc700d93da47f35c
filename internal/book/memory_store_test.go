package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(title string, rating int) Book {
	return Book{
		Title:       title,
		Author:      "A",
		Description: "D",
		Rating:      rating,
		Published:   "2021-01-01",
	}
}

func TestMemoryStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts at 1", func(t *testing.T) {
		store := NewMemoryStore()
		created, err := store.Create(ctx, newBook("T", 3))
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
	})

	t.Run("seeded store continues after max id", func(t *testing.T) {
		store := NewSeededMemoryStore()
		created, err := store.Create(ctx, newBook("T", 3))
		require.NoError(t, err)
		assert.Equal(t, 12, created.ID)
	})

	t.Run("client supplied id is ignored", func(t *testing.T) {
		store := NewMemoryStore()
		candidate := newBook("T", 3)
		candidate.ID = 99
		created, err := store.Create(ctx, candidate)
		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
	})

	t.Run("uses max id when ids are out of order", func(t *testing.T) {
		store := NewMemoryStore(Book{ID: 7}, Book{ID: 3})
		created, err := store.Create(ctx, newBook("T", 3))
		require.NoError(t, err)
		assert.Equal(t, 8, created.ID)
	})

	t.Run("never reuses an existing id after deleting the last book", func(t *testing.T) {
		store := NewSeededMemoryStore()
		require.NoError(t, store.Delete(ctx, 11))
		require.NoError(t, store.Delete(ctx, 5))
		created, err := store.Create(ctx, newBook("T", 3))
		require.NoError(t, err)
		assert.Equal(t, 11, created.ID)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		seen := map[int]bool{}
		for _, b := range all {
			assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
			seen[b.ID] = true
		}
	})
}

func TestMemoryStore_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()
	input := newBook("T", 3)

	created, err := store.Create(ctx, input)
	require.NoError(t, err)

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	input.ID = created.ID
	assert.Equal(t, input, got)
}

func TestMemoryStore_GetByID(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()

	t.Run("found", func(t *testing.T) {
		got, err := store.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Title7", got.Title)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := store.GetByID(ctx, 100)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore_ListAllPreservesOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 11)
	for i, b := range all {
		assert.Equal(t, i+1, b.ID)
	}

	all[0].Title = "mutated"
	again, err := store.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Title 1", again.Title)
}

func TestMemoryStore_FilterByRating(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()

	books, err := store.FilterByRating(ctx, 6)
	require.NoError(t, err)
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int{4, 6, 7}, ids)

	none, err := store.FilterByRating(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_FilterBy(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()
	title := "Title 2"
	author := "Author 2"
	wrongAuthor := "Author 3"
	rating := 4
	published := "2013-01-01"

	t.Run("no predicates returns everything", func(t *testing.T) {
		books, err := store.FilterBy(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, books, 11)
	})

	t.Run("all predicates conjunctive", func(t *testing.T) {
		books, err := store.FilterBy(ctx, Filter{Title: &title, Author: &author, Rating: &rating, Published: &published})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, 2, books[0].ID)
	})

	t.Run("conflicting predicates match nothing", func(t *testing.T) {
		books, err := store.FilterBy(ctx, Filter{Title: &title, Author: &wrongAuthor})
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("rating only", func(t *testing.T) {
		books, err := store.FilterBy(ctx, Filter{Rating: &rating})
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, 2, books[0].ID)
		assert.Equal(t, 8, books[1].ID)
	})
}

func TestMemoryStore_UpdateLeavesPublished(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()

	err := store.Update(ctx, 3, Book{
		ID:          500,
		Title:       "New title",
		Author:      "New author",
		Description: "New description",
		Rating:      5,
		Published:   "1999-09-09",
	})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, Book{
		ID:          3,
		Title:       "New title",
		Author:      "New author",
		Description: "New description",
		Rating:      5,
		Published:   "2014-01-01",
	}, got)
}

func TestMemoryStore_UpdateUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewSeededMemoryStore()
	before, _ := store.ListAll(ctx)

	require.NoError(t, store.Update(ctx, 404, newBook("T", 3)))

	after, _ := store.ListAll(ctx)
	assert.Equal(t, before, after)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes every match", func(t *testing.T) {
		store := NewMemoryStore(Book{ID: 1}, Book{ID: 2}, Book{ID: 1})
		require.NoError(t, store.Delete(ctx, 1))
		all, _ := store.ListAll(ctx)
		assert.Equal(t, []Book{{ID: 2}}, all)
		_, err := store.GetByID(ctx, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := NewSeededMemoryStore()
		require.NoError(t, store.Delete(ctx, 404))
		all, _ := store.ListAll(ctx)
		assert.Len(t, all, 11)
	})
}

func TestSeedBooks(t *testing.T) {
	books := SeedBooks()
	require.Len(t, books, 11)
	assert.Equal(t, Book{ID: 1, Title: "Title 1", Author: "Author 1", Description: "Description 1", Rating: 5, Published: "2012-01-01"}, books[0])
	assert.Equal(t, "Title7", books[6].Title)
	assert.Equal(t, 1, books[10].Rating)
}
