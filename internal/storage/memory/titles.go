package memory

import (
	"context"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type TitleStore struct {
	*db
}

// hydrate builds the read representation of row, computing the rating from
// the reviews present right now.
func (s *TitleStore) hydrate(row titleRow) models.Title {
	t := models.Title{
		ID:          row.ID,
		Name:        row.Name,
		Year:        row.Year,
		Description: row.Description,
		Category:    s.categories[row.CategoryID],
		Genres:      []models.Genre{},
	}
	for _, id := range sortedIDs(s.genres, func(models.Genre) bool { return true }) {
		for _, gid := range row.GenreIDs {
			if gid == id {
				t.Genres = append(t.Genres, s.genres[id])
			}
		}
	}
	var sum, count int
	for _, r := range s.reviews {
		if r.TitleID == row.ID {
			sum += r.Score
			count++
		}
	}
	if count > 0 {
		rating := float64(sum) / float64(count)
		t.Rating = &rating
	}
	return t
}

func (s *TitleStore) Get(ctx context.Context, id int64) (*models.Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.titles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	t := s.hydrate(row)
	return &t, nil
}

func (s *TitleStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.titles[id]
	return ok, nil
}

func (s *TitleStore) hasGenre(row titleRow, slug string) bool {
	for _, gid := range row.GenreIDs {
		if s.genres[gid].Slug == slug {
			return true
		}
	}
	return false
}

func (s *TitleStore) List(ctx context.Context, tf filters.TitleFilter, f filters.Filters) ([]models.Title, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.titles, func(row titleRow) bool {
		switch {
		case tf.Category != "" && s.categories[row.CategoryID].Slug != tf.Category:
			return false
		case tf.Genre != "" && !s.hasGenre(row, tf.Genre):
			return false
		case tf.Name != "" && !containsFold(row.Name, tf.Name):
			return false
		case tf.Year != 0 && int(row.Year) != tf.Year:
			return false
		}
		return true
	})
	ids, total := page(ids, f)
	titles := make([]models.Title, 0, len(ids))
	for _, id := range ids {
		titles = append(titles, s.hydrate(s.titles[id]))
	}
	return titles, total, nil
}

func toRow(title *models.Title) titleRow {
	row := titleRow{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		CategoryID:  title.Category.ID,
	}
	for _, g := range title.Genres {
		row.GenreIDs = append(row.GenreIDs, g.ID)
	}
	return row
}

func (s *TitleStore) checkRefs(row titleRow) error {
	if _, ok := s.categories[row.CategoryID]; !ok {
		return storage.ErrNotFound
	}
	for _, gid := range row.GenreIDs {
		if _, ok := s.genres[gid]; !ok {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (s *TitleStore) Insert(ctx context.Context, title *models.Title) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := toRow(title)
	if err := s.checkRefs(row); err != nil {
		return 0, err
	}
	row.ID = s.nextID()
	s.titles[row.ID] = row
	return row.ID, nil
}

func (s *TitleStore) Update(ctx context.Context, title *models.Title) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[title.ID]; !ok {
		return storage.ErrNotFound
	}
	row := toRow(title)
	if err := s.checkRefs(row); err != nil {
		return err
	}
	s.titles[row.ID] = row
	return nil
}

func (s *TitleStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[id]; !ok {
		return storage.ErrNotFound
	}
	s.deleteTitle(id)
	return nil
}
