// Package stats computes derived figures for a bookshelf from its current
// members. Nothing here is stored; every call recomputes from its input.
package stats

import "github.com/mrlokans/bookshelf/internal/entities"

// Shelf is a point-in-time summary of a bookshelf's members.
type Shelf struct {
	BookshelfID   uint           `json:"bookshelf_id"`
	BookshelfName string         `json:"bookshelf_name"`
	TotalBooks    int            `json:"total_books"`
	TotalPages    int            `json:"total_pages"`
	AvgPages      float64        `json:"avg_pages"`
	Genres        map[string]int `json:"genres"`
}

// Compute summarises members. An empty member set yields zero totals and an
// empty genre map.
func Compute(shelf entities.Bookshelf, members []entities.Book) Shelf {
	out := Shelf{
		BookshelfID:   shelf.ID,
		BookshelfName: shelf.Name,
		Genres:        make(map[string]int),
	}
	if len(members) == 0 {
		return out
	}

	for _, b := range members {
		out.TotalPages += b.Pages
		out.Genres[b.Genre]++
	}
	out.TotalBooks = len(members)
	out.AvgPages = RoundedAverage(out.TotalPages, out.TotalBooks)
	return out
}

// RoundedAverage returns total/n rounded half-up to two decimal places.
// The rounding is done on integers so exact ties (x.xx5) always round up,
// independent of floating point representation. Returns 0 when n <= 0.
// total is expected to be non-negative.
func RoundedAverage(total, n int) float64 {
	if n <= 0 {
		return 0
	}
	t := int64(total)
	d := int64(n)
	cents := (200*t + d) / (2 * d)
	return float64(cents) / 100
}
