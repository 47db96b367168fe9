package titles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/rbac"
	"yamdb/proj/internal/storage"
)

var (
	ErrTitleNotFound   = fmt.Errorf("title %w", errs.ErrNotFound)
	ErrUnknownCategory = errs.Validation("category", "Unknown category slug")
	ErrUnknownGenre    = errs.Validation("genre", "Unknown genre slug")
	ErrFutureYear      = errs.Validation("year", "Year can't be in the future")
)

type TitleStorage interface {
	Get(ctx context.Context, id int64) (*models.Title, error)
	List(ctx context.Context, tf filters.TitleFilter, f filters.Filters) ([]models.Title, int, error)
	Insert(ctx context.Context, title *models.Title) (int64, error)
	Update(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type CategoryStorage interface {
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type GenreStorage interface {
	GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
}

// Input is a title write. Nil fields are left untouched on update; on create
// the handler guarantees Name, Year and Category are set.
type Input struct {
	Name        *string
	Year        *int32
	Description *string
	Category    *string
	Genres      *[]string
}

type TitleService struct {
	log        *slog.Logger
	storage    TitleStorage
	categories CategoryStorage
	genres     GenreStorage
	now        func() time.Time
}

func New(log *slog.Logger, storage TitleStorage, categories CategoryStorage, genres GenreStorage) *TitleService {
	return &TitleService{
		log:        log,
		storage:    storage,
		categories: categories,
		genres:     genres,
		now:        time.Now,
	}
}

func (s *TitleService) List(ctx context.Context, tf filters.TitleFilter, f filters.Filters) ([]models.Title, int, error) {
	const op = "titles.TitleService.List"
	log := s.log.With("op", op)
	titles, total, err := s.storage.List(ctx, tf, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return titles, total, nil
}

func (s *TitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	const op = "titles.TitleService.Get"
	log := s.log.With("op", op, "id", id)
	title, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return title, nil
}

// apply copies the set fields of in onto title, resolving slugs to rows.
func (s *TitleService) apply(ctx context.Context, title *models.Title, in Input) error {
	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if int(*in.Year) > s.now().Year() {
			return ErrFutureYear
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		category, err := s.categories.GetBySlug(ctx, *in.Category)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrUnknownCategory
			}
			return err
		}
		title.Category = *category
	}
	if in.Genres != nil {
		slugs := unique(*in.Genres)
		genres, err := s.genres.GetBySlugs(ctx, slugs)
		if err != nil {
			return err
		}
		if len(genres) != len(slugs) {
			return ErrUnknownGenre
		}
		title.Genres = genres
	}
	return nil
}

func unique(slugs []string) []string {
	seen := make(map[string]bool, len(slugs))
	res := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			res = append(res, slug)
		}
	}
	return res
}

func (s *TitleService) Create(ctx context.Context, actor *models.User, in Input) (*models.Title, error) {
	const op = "titles.TitleService.Create"
	log := s.log.With("op", op)
	if err := rbac.Authorize(actor, rbac.ActionCreate, rbac.Catalog()); err != nil {
		return nil, err
	}
	title := &models.Title{Genres: []models.Genre{}}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	id, err := s.storage.Insert(ctx, title)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownCategory
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("title created", "id", id)
	return s.Get(ctx, id)
}

func (s *TitleService) Update(ctx context.Context, actor *models.User, id int64, in Input) (*models.Title, error) {
	const op = "titles.TitleService.Update"
	log := s.log.With("op", op, "id", id)
	if err := rbac.Authorize(actor, rbac.ActionUpdate, rbac.Catalog()); err != nil {
		return nil, err
	}
	title, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, title, in); err != nil {
		return nil, err
	}
	if err := s.storage.Update(ctx, title); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *TitleService) Delete(ctx context.Context, actor *models.User, id int64) error {
	const op = "titles.TitleService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := rbac.Authorize(actor, rbac.ActionDelete, rbac.Catalog()); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTitleNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("title deleted")
	return nil
}
