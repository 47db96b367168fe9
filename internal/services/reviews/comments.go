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

type CommentStorage interface {
	Get(ctx context.Context, reviewID, id int64) (*models.Comment, error)
	List(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error)
	Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentService resolves every comment through its review, so a review id
// that belongs to another title is reported as missing.
type CommentService struct {
	log     *slog.Logger
	reviews *ReviewService
	storage CommentStorage
}

func NewComments(log *slog.Logger, reviews *ReviewService, storage CommentStorage) *CommentService {
	return &CommentService{
		log:     log,
		reviews: reviews,
		storage: storage,
	}
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	const op = "reviews.CommentService.List"
	log := s.log.With("op", op, "review_id", reviewID)
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	comments, total, err := s.storage.List(ctx, reviewID, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, id int64) (*models.Comment, error) {
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Get(ctx, reviewID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, text string) (*models.Comment, error) {
	const op = "reviews.CommentService.Create"
	log := s.log.With("op", op, "review_id", reviewID)
	if err := rbac.Authorize(actor, rbac.ActionCreate, rbac.Content(0)); err != nil {
		return nil, err
	}
	if _, err := s.reviews.Get(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.storage.Insert(ctx, &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     text,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("comment created", "id", comment.ID)
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, id int64, text *string) (*models.Comment, error) {
	const op = "reviews.CommentService.Update"
	log := s.log.With("op", op, "review_id", reviewID, "id", id)
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return nil, err
	}
	if err := rbac.Authorize(actor, rbac.ActionUpdate, rbac.Content(comment.AuthorID)); err != nil {
		return nil, err
	}
	if text != nil {
		comment.Text = *text
	}
	updated, err := s.storage.Update(ctx, comment)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, id int64) error {
	const op = "reviews.CommentService.Delete"
	log := s.log.With("op", op, "review_id", reviewID, "id", id)
	comment, err := s.Get(ctx, titleID, reviewID, id)
	if err != nil {
		return err
	}
	if err := rbac.Authorize(actor, rbac.ActionDelete, rbac.Content(comment.AuthorID)); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCommentNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("comment deleted")
	return nil
}
