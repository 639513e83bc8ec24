package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func book(pages int, genre string) entities.Book {
	return entities.Book{Pages: pages, Genre: genre}
}

func TestCompute_EmptyShelf(t *testing.T) {
	got := Compute(entities.Bookshelf{ID: 3, Name: "Empty"}, nil)

	assert.Equal(t, uint(3), got.BookshelfID)
	assert.Equal(t, "Empty", got.BookshelfName)
	assert.Zero(t, got.TotalBooks)
	assert.Zero(t, got.TotalPages)
	assert.Zero(t, got.AvgPages)
	assert.NotNil(t, got.Genres)
	assert.Empty(t, got.Genres)
}

func TestCompute_TwoFictionBooks(t *testing.T) {
	got := Compute(entities.Bookshelf{ID: 1, Name: "My Reading Collection"}, []entities.Book{
		book(180, "Fiction"),
		book(281, "Fiction"),
	})

	assert.Equal(t, 2, got.TotalBooks)
	assert.Equal(t, 461, got.TotalPages)
	assert.Equal(t, 230.5, got.AvgPages)
	assert.Equal(t, map[string]int{"Fiction": 2}, got.Genres)
}

func TestCompute_GenreHistogram(t *testing.T) {
	got := Compute(entities.Bookshelf{ID: 1}, []entities.Book{
		book(100, "Fiction"),
		book(200, "Poetry"),
		book(300, "Fiction"),
		book(400, "History"),
	})

	assert.Equal(t, 4, got.TotalBooks)
	assert.Equal(t, 1000, got.TotalPages)
	assert.Equal(t, 250.0, got.AvgPages)
	assert.Equal(t, map[string]int{"Fiction": 2, "Poetry": 1, "History": 1}, got.Genres)

	sum := 0
	for _, n := range got.Genres {
		sum += n
	}
	assert.Equal(t, got.TotalBooks, sum)
}

func TestCompute_GenresAreCaseSensitive(t *testing.T) {
	got := Compute(entities.Bookshelf{}, []entities.Book{book(1, "fiction"), book(1, "Fiction")})
	assert.Equal(t, map[string]int{"fiction": 1, "Fiction": 1}, got.Genres)
}

func TestRoundedAverage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		n     int
		want  float64
	}{
		{"exact", 10, 2, 5},
		{"one decimal", 461, 2, 230.5},
		{"repeating rounds down", 100, 3, 33.33},
		{"repeating rounds up", 200, 3, 66.67},
		{"tie rounds up", 1, 8, 0.13},
		{"tie rounds up larger value", 1001, 8, 125.13},
		{"below tie rounds down", 1, 16, 0.06},
		{"zero count", 10, 0, 0},
		{"zero total", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundedAverage(tt.total, tt.n))
		})
	}
}
