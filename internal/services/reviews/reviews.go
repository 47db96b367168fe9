package reviews

import (
	"context"
	"errors"
	"log/slog"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/rbac"
	"yamdb/proj/internal/storage"
)

type TitleStorage interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ReviewStorage interface {
	Get(ctx context.Context, titleID, id int64) (*models.Review, error)
	Exists(ctx context.Context, authorID, titleID int64) (bool, error)
	List(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error)
	Insert(ctx context.Context, review *models.Review) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService struct {
	log     *slog.Logger
	titles  TitleStorage
	storage ReviewStorage
}

func New(log *slog.Logger, titles TitleStorage, storage ReviewStorage) *ReviewService {
	return &ReviewService{
		log:     log,
		titles:  titles,
		storage: storage,
	}
}

func validScore(score int) bool {
	return score >= models.MinScore && score <= models.MaxScore
}

func (s *ReviewService) checkTitle(ctx context.Context, titleID int64) error {
	exists, err := s.titles.Exists(ctx, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTitleNotFound
	}
	return nil
}

func (s *ReviewService) List(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	const op = "reviews.ReviewService.List"
	log := s.log.With("op", op, "title_id", titleID)
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	reviews, total, err := s.storage.List(ctx, titleID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return reviews, total, nil
}

// Get returns the review only when it belongs to titleID.
func (s *ReviewService) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.storage.Get(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// Create stores the actor's review of the title. The Exists lookup only
// short-circuits the common case; the storage unique constraint decides
// under concurrent inserts.
func (s *ReviewService) Create(ctx context.Context, actor *models.User, titleID int64, text string, score int) (*models.Review, error) {
	const op = "reviews.ReviewService.Create"
	log := s.log.With("op", op, "title_id", titleID)
	if err := rbac.Authorize(actor, rbac.ActionCreate, rbac.Content(0)); err != nil {
		return nil, err
	}
	if !validScore(score) {
		return nil, ErrScoreOutOfRange
	}
	if err := s.checkTitle(ctx, titleID); err != nil {
		return nil, err
	}
	exists, err := s.storage.Exists(ctx, actor.ID, titleID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}
	review, err := s.storage.Insert(ctx, &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     text,
		Score:    score,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("duplicate review rejected by constraint")
			return nil, ErrDuplicateReview
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("review created", "id", review.ID)
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *models.User, titleID, id int64, text *string, score *int) (*models.Review, error) {
	const op = "reviews.ReviewService.Update"
	log := s.log.With("op", op, "title_id", titleID, "id", id)
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if err := rbac.Authorize(actor, rbac.ActionUpdate, rbac.Content(review.AuthorID)); err != nil {
		return nil, err
	}
	if text != nil {
		review.Text = *text
	}
	if score != nil {
		if !validScore(*score) {
			return nil, ErrScoreOutOfRange
		}
		review.Score = *score
	}
	updated, err := s.storage.Update(ctx, review)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *models.User, titleID, id int64) error {
	const op = "reviews.ReviewService.Delete"
	log := s.log.With("op", op, "title_id", titleID, "id", id)
	review, err := s.Get(ctx, titleID, id)
	if err != nil {
		return err
	}
	if err := rbac.Authorize(actor, rbac.ActionDelete, rbac.Content(review.AuthorID)); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReviewNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("review deleted")
	return nil
}
