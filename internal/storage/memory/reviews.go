package memory

import (
	"context"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type ReviewStore struct {
	*db
}

func (s *ReviewStore) withNames(r models.Review) models.Review {
	r.Author = s.users[r.AuthorID].Username
	r.Title = s.titles[r.TitleID].Name
	return r
}

func (s *ReviewStore) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[id]
	if !ok || r.TitleID != titleID {
		return nil, storage.ErrNotFound
	}
	r = s.withNames(r)
	return &r, nil
}

func (s *ReviewStore) Exists(ctx context.Context, authorID, titleID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			return true, nil
		}
	}
	return false, nil
}

func (s *ReviewStore) List(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.reviews, func(r models.Review) bool { return r.TitleID == titleID })
	ids, total := page(ids, f)
	reviews := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		reviews = append(reviews, s.withNames(s.reviews[id]))
	}
	return reviews, total, nil
}

func (s *ReviewStore) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.titles[review.TitleID]; !ok {
		return nil, storage.ErrNotFound
	}
	if _, ok := s.users[review.AuthorID]; !ok {
		return nil, storage.ErrNotFound
	}
	for _, r := range s.reviews {
		if r.AuthorID == review.AuthorID && r.TitleID == review.TitleID {
			return nil, &storage.ConflictError{Constraint: storage.ConstraintReview}
		}
	}
	r := *review
	r.ID = s.nextID()
	r.PubDate = s.now()
	s.reviews[r.ID] = r
	r = s.withNames(r)
	return &r, nil
}

func (s *ReviewStore) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[review.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	r.Text = review.Text
	r.Score = review.Score
	s.reviews[r.ID] = r
	r = s.withNames(r)
	return &r, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	s.deleteReviews(func(r models.Review) bool { return r.ID != id })
	return nil
}

type CommentStore struct {
	*db
}

func (s *CommentStore) withAuthor(c models.Comment) models.Comment {
	c.Author = s.users[c.AuthorID].Username
	return c
}

func (s *CommentStore) Get(ctx context.Context, reviewID, id int64) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok || c.ReviewID != reviewID {
		return nil, storage.ErrNotFound
	}
	c = s.withAuthor(c)
	return &c, nil
}

func (s *CommentStore) List(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.comments, func(c models.Comment) bool { return c.ReviewID == reviewID })
	ids, total := page(ids, f)
	comments := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		comments = append(comments, s.withAuthor(s.comments[id]))
	}
	return comments, total, nil
}

func (s *CommentStore) Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[comment.ReviewID]; !ok {
		return nil, storage.ErrNotFound
	}
	c := *comment
	c.ID = s.nextID()
	c.PubDate = s.now()
	s.comments[c.ID] = c
	c = s.withAuthor(c)
	return &c, nil
}

func (s *CommentStore) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[comment.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c.Text = comment.Text
	s.comments[c.ID] = c
	c = s.withAuthor(c)
	return &c, nil
}

func (s *CommentStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
