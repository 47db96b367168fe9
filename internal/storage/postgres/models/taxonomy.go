package models

import (
	"context"
	"fmt"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type taxonomy interface {
	models.Category | models.Genre
}

type taxonomyItem struct {
	ID   int64
	Name string
	Slug string
}

type taxonomyRow struct {
	Count int    `db:"count"`
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Slug  string `db:"slug"`
}

// taxonomyModel serves the two slug-addressed lookup tables, categories and genres.
type taxonomyModel[T taxonomy] struct {
	DB    *pgxpool.Pool
	table string
}

type CategoryModel struct {
	taxonomyModel[models.Category]
}

type GenreModel struct {
	taxonomyModel[models.Genre]
}

func (m *taxonomyModel[T]) Insert(ctx context.Context, name, slug string) (*T, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf("INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING id, name, slug", m.table),
		name,
		slug,
	)
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	return &item, nil
}

func (m *taxonomyModel[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	rows, err := m.DB.Query(ctx, fmt.Sprintf("SELECT id, name, slug FROM %s WHERE slug = $1", m.table), slug)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	return &item, nil
}

// GetBySlugs returns the rows matching slugs; missing slugs are skipped.
func (m *taxonomyModel[T]) GetBySlugs(ctx context.Context, slugs []string) ([]T, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf("SELECT id, name, slug FROM %s WHERE slug = ANY($1) ORDER BY id", m.table),
		slugs,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func (m *taxonomyModel[T]) List(ctx context.Context, search string, f filters.Filters) ([]T, int, error) {
	rows, err := m.DB.Query(ctx, fmt.Sprintf(`
	SELECT count(*) OVER() AS count, id, name, slug FROM %s
	WHERE (name ILIKE '%%' || $1 || '%%' OR $1 = '')
	ORDER BY id ASC
	LIMIT $2 OFFSET $3`, m.table), search, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, err
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[taxonomyRow])
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, len(outputRows))
	for _, r := range outputRows {
		items = append(items, T(taxonomyItem{ID: r.ID, Name: r.Name, Slug: r.Slug}))
	}
	if len(outputRows) == 0 {
		return items, 0, nil
	}
	return items, outputRows[0].Count, nil
}

func (m *taxonomyModel[T]) Delete(ctx context.Context, slug string) error {
	status, err := m.DB.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE slug = $1", m.table), slug)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
