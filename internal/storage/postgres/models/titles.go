package models

import (
	"context"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TitleModel struct {
	DB *pgxpool.Pool
}

// rating is recomputed from the current reviews on every read.
const titleSelect = `
	SELECT count(*) OVER(), t.id, t.name, t.year, t.description,
		(SELECT AVG(r.score)::float8 FROM reviews r WHERE r.title_id = t.id) AS rating,
		c.id, c.name, c.slug
	FROM titles t JOIN categories c ON c.id = t.category_id`

func scanTitles(rows pgx.Rows) ([]models.Title, int, error) {
	defer rows.Close()
	var (
		titles []models.Title
		total  int
	)
	for rows.Next() {
		var t models.Title
		err := rows.Scan(
			&total, &t.ID, &t.Name, &t.Year, &t.Description, &t.Rating,
			&t.Category.ID, &t.Category.Name, &t.Category.Slug,
		)
		if err != nil {
			return nil, 0, err
		}
		t.Genres = []models.Genre{}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (m *TitleModel) attachGenres(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(titles))
	index := make(map[int64]int, len(titles))
	for i, t := range titles {
		ids = append(ids, t.ID)
		index[t.ID] = i
	}
	rows, err := m.DB.Query(ctx, `
	SELECT tg.title_id, g.id, g.name, g.slug
	FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
	WHERE tg.title_id = ANY($1)
	ORDER BY g.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			titleID int64
			g       models.Genre
		)
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return err
		}
		i := index[titleID]
		titles[i].Genres = append(titles[i].Genres, g)
	}
	return rows.Err()
}

func (m *TitleModel) Get(ctx context.Context, id int64) (*models.Title, error) {
	rows, err := m.DB.Query(ctx, titleSelect+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, err
	}
	titles, _, err := scanTitles(rows)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, storage.ErrNotFound
	}
	if err := m.attachGenres(ctx, titles); err != nil {
		return nil, err
	}
	return &titles[0], nil
}

func (m *TitleModel) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM titles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func (m *TitleModel) List(ctx context.Context, tf filters.TitleFilter, f filters.Filters) ([]models.Title, int, error) {
	rows, err := m.DB.Query(ctx, titleSelect+`
	WHERE (c.slug = $1 OR $1 = '')
	AND ($2 = '' OR EXISTS (
		SELECT 1 FROM title_genres tg JOIN genres g ON g.id = tg.genre_id
		WHERE tg.title_id = t.id AND g.slug = $2))
	AND (t.name ILIKE '%' || $3 || '%' OR $3 = '')
	AND (t.year = $4 OR $4 = 0)
	ORDER BY t.id ASC
	LIMIT $5 OFFSET $6`,
		tf.Category, tf.Genre, tf.Name, tf.Year, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	titles, total, err := scanTitles(rows)
	if err != nil {
		return nil, 0, err
	}
	if titles == nil {
		titles = []models.Title{}
	}
	if err := m.attachGenres(ctx, titles); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func genreIDs(genres []models.Genre) []int64 {
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		ids = append(ids, g.ID)
	}
	return ids
}

func linkGenres(ctx context.Context, tx pgx.Tx, titleID int64, genres []models.Genre) error {
	if _, err := tx.Exec(ctx, "DELETE FROM title_genres WHERE title_id = $1", titleID); err != nil {
		return err
	}
	if len(genres) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
	INSERT INTO title_genres (title_id, genre_id)
	SELECT $1, unnest($2::bigint[])
	ON CONFLICT DO NOTHING`, titleID, genreIDs(genres))
	return err
}

// Insert stores the title with its category and genre links and returns its id.
func (m *TitleModel) Insert(ctx context.Context, title *models.Title) (int64, error) {
	var id int64
	err := postgres.WithTx(ctx, m.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4) RETURNING id`,
			title.Name, title.Year, title.Description, title.Category.ID,
		).Scan(&id)
		if err != nil {
			return err
		}
		return linkGenres(ctx, tx, id, title.Genres)
	})
	if err != nil {
		return 0, postgres.TranslateErr(err)
	}
	return id, nil
}

func (m *TitleModel) Update(ctx context.Context, title *models.Title) error {
	err := postgres.WithTx(ctx, m.DB, func(tx pgx.Tx) error {
		status, err := tx.Exec(ctx, `
		UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5`,
			title.Name, title.Year, title.Description, title.Category.ID, title.ID,
		)
		if err != nil {
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return linkGenres(ctx, tx, title.ID, title.Genres)
	})
	return postgres.TranslateErr(err)
}

func (m *TitleModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM titles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
