// Package catalog manages the flat taxonomies titles are grouped by:
// categories and genres. Both are created, listed and deleted by slug only.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/domain/rbac"
	"yamdb/proj/internal/storage"
)

var (
	ErrCategoryNotFound  = fmt.Errorf("category %w", errs.ErrNotFound)
	ErrGenreNotFound     = fmt.Errorf("genre %w", errs.ErrNotFound)
	ErrCategorySlugTaken = errs.Conflict("slug", "A category with that slug already exists")
	ErrGenreSlugTaken    = errs.Conflict("slug", "A genre with that slug already exists")
)

type Storage[T any] interface {
	Insert(ctx context.Context, name, slug string) (*T, error)
	List(ctx context.Context, search string, f filters.Filters) ([]T, int, error)
	Delete(ctx context.Context, slug string) error
}

type Service[T any] struct {
	log       *slog.Logger
	storage   Storage[T]
	kind      string
	notFound  error
	slugTaken error
}

type (
	CategoryService = Service[models.Category]
	GenreService    = Service[models.Genre]
)

func NewCategories(log *slog.Logger, storage Storage[models.Category]) *CategoryService {
	return &Service[models.Category]{
		log:       log,
		storage:   storage,
		kind:      "category",
		notFound:  ErrCategoryNotFound,
		slugTaken: ErrCategorySlugTaken,
	}
}

func NewGenres(log *slog.Logger, storage Storage[models.Genre]) *GenreService {
	return &Service[models.Genre]{
		log:       log,
		storage:   storage,
		kind:      "genre",
		notFound:  ErrGenreNotFound,
		slugTaken: ErrGenreSlugTaken,
	}
}

func (s *Service[T]) List(ctx context.Context, search string, f filters.Filters) ([]T, int, error) {
	const op = "catalog.Service.List"
	log := s.log.With("op", op, "kind", s.kind)
	items, total, err := s.storage.List(ctx, search, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service[T]) Create(ctx context.Context, actor *models.User, name, slug string) (*T, error) {
	const op = "catalog.Service.Create"
	log := s.log.With("op", op, "kind", s.kind, "slug", slug)
	if err := rbac.Authorize(actor, rbac.ActionCreate, rbac.Catalog()); err != nil {
		return nil, err
	}
	item, err := s.storage.Insert(ctx, name, slug)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, s.slugTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("created")
	return item, nil
}

func (s *Service[T]) Delete(ctx context.Context, actor *models.User, slug string) error {
	const op = "catalog.Service.Delete"
	log := s.log.With("op", op, "kind", s.kind, "slug", slug)
	if err := rbac.Authorize(actor, rbac.ActionDelete, rbac.Catalog()); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, slug); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.notFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("deleted")
	return nil
}
