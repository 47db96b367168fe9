package memory

import (
	"context"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type CategoryStore struct {
	*db
}

func (s *CategoryStore) Insert(ctx context.Context, name, slug string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return nil, &storage.ConflictError{Constraint: storage.ConstraintCategory}
		}
	}
	c := models.Category{ID: s.nextID(), Name: name, Slug: slug}
	s.categories[c.ID] = c
	return &c, nil
}

func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *CategoryStore) List(ctx context.Context, search string, f filters.Filters) ([]models.Category, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.categories, func(c models.Category) bool { return containsFold(c.Name, search) })
	ids, total := page(ids, f)
	items := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.categories[id])
	}
	return items, total, nil
}

// Delete removes the category together with its titles.
func (s *CategoryStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.categories {
		if c.Slug != slug {
			continue
		}
		delete(s.categories, id)
		for titleID, t := range s.titles {
			if t.CategoryID == id {
				s.deleteTitle(titleID)
			}
		}
		return nil
	}
	return storage.ErrNotFound
}

type GenreStore struct {
	*db
}

func (s *GenreStore) Insert(ctx context.Context, name, slug string) (*models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.genres {
		if g.Slug == slug {
			return nil, &storage.ConflictError{Constraint: storage.ConstraintGenre}
		}
	}
	g := models.Genre{ID: s.nextID(), Name: name, Slug: slug}
	s.genres[g.ID] = g
	return &g, nil
}

func (s *GenreStore) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.genres {
		if g.Slug == slug {
			return &g, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *GenreStore) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = true
	}
	ids := sortedIDs(s.genres, func(g models.Genre) bool { return wanted[g.Slug] })
	genres := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, s.genres[id])
	}
	return genres, nil
}

func (s *GenreStore) List(ctx context.Context, search string, f filters.Filters) ([]models.Genre, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.genres, func(g models.Genre) bool { return containsFold(g.Name, search) })
	ids, total := page(ids, f)
	items := make([]models.Genre, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.genres[id])
	}
	return items, total, nil
}

func (s *GenreStore) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range s.genres {
		if g.Slug != slug {
			continue
		}
		delete(s.genres, id)
		for titleID, t := range s.titles {
			kept := t.GenreIDs[:0:0]
			for _, gid := range t.GenreIDs {
				if gid != id {
					kept = append(kept, gid)
				}
			}
			t.GenreIDs = kept
			s.titles[titleID] = t
		}
		return nil
	}
	return storage.ErrNotFound
}
