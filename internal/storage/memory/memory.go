// Package memory is a process-local storage backend with the same semantics
// as the Postgres models: unique constraints reported as
// *storage.ConflictError, cascading deletes and read-time ratings.
// One mutex guards every table, so check-then-write sequences are atomic.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
)

type titleRow struct {
	ID          int64
	Name        string
	Year        int32
	Description string
	CategoryID  int64
	GenreIDs    []int64
}

type db struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users      map[int64]models.User
	categories map[int64]models.Category
	genres     map[int64]models.Genre
	titles     map[int64]titleRow
	reviews    map[int64]models.Review
	comments   map[int64]models.Comment
}

type Store struct {
	User     *UserStore
	Category *CategoryStore
	Genre    *GenreStore
	Title    *TitleStore
	Review   *ReviewStore
	Comment  *CommentStore
}

func New() *Store {
	d := &db{
		now:        time.Now,
		users:      make(map[int64]models.User),
		categories: make(map[int64]models.Category),
		genres:     make(map[int64]models.Genre),
		titles:     make(map[int64]titleRow),
		reviews:    make(map[int64]models.Review),
		comments:   make(map[int64]models.Comment),
	}
	return &Store{
		User:     &UserStore{d},
		Category: &CategoryStore{d},
		Genre:    &GenreStore{d},
		Title:    &TitleStore{d},
		Review:   &ReviewStore{d},
		Comment:  &CommentStore{d},
	}
}

func (d *db) nextID() int64 {
	d.seq++
	return d.seq
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortedIDs[T any](m map[int64]T, keep func(T) bool) []int64 {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// page returns the ids on the requested page and the total number of ids.
func page(ids []int64, f filters.Filters) ([]int64, int) {
	total := len(ids)
	start := f.Offset()
	if start >= total || f.Limit() <= 0 {
		return nil, total
	}
	end := start + f.Limit()
	if end > total {
		end = total
	}
	return ids[start:end], total
}

// Cascades, called with mu held for writing.

func (d *db) deleteComments(keep func(models.Comment) bool) {
	for id, c := range d.comments {
		if !keep(c) {
			delete(d.comments, id)
		}
	}
}

func (d *db) deleteReviews(keep func(models.Review) bool) {
	for id, r := range d.reviews {
		if !keep(r) {
			delete(d.reviews, id)
			d.deleteComments(func(c models.Comment) bool { return c.ReviewID != id })
		}
	}
}

func (d *db) deleteTitle(id int64) {
	delete(d.titles, id)
	d.deleteReviews(func(r models.Review) bool { return r.TitleID != id })
}
