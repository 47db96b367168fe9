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

type ReviewModel struct {
	DB *pgxpool.Pool
}

const reviewProjection = `r.id, r.title_id, r.author_id, u.username AS author, t.name AS title, r.text, r.score, r.pub_date`

func collectReview(rows pgx.Rows, err error) (*models.Review, error) {
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	return &review, nil
}

func (m *ReviewModel) Get(ctx context.Context, titleID, id int64) (*models.Review, error) {
	return collectReview(m.DB.Query(ctx, `
	SELECT `+reviewProjection+`
	FROM reviews r JOIN users u ON u.id = r.author_id JOIN titles t ON t.id = r.title_id
	WHERE r.id = $1 AND r.title_id = $2`, id, titleID))
}

func (m *ReviewModel) Exists(ctx context.Context, authorID, titleID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND title_id = $2)",
		authorID, titleID,
	).Scan(&exists)
	return exists, err
}

func (m *ReviewModel) List(ctx context.Context, titleID int64, f filters.Filters) ([]models.Review, int, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT count(*) OVER() AS count, `+reviewProjection+`
	FROM reviews r JOIN users u ON u.id = r.author_id JOIN titles t ON t.id = r.title_id
	WHERE r.title_id = $1
	ORDER BY r.pub_date ASC, r.id ASC
	LIMIT $2 OFFSET $3`, titleID, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int `db:"count"`
		models.Review
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	reviews := make([]models.Review, 0, len(outputRows))
	for _, row := range outputRows {
		reviews = append(reviews, row.Review)
	}
	if len(outputRows) == 0 {
		return reviews, 0, nil
	}
	return reviews, outputRows[0].Count, nil
}

// Insert relies on the reviews_author_title_key constraint to reject a
// second review by the same author, reported as *storage.ConflictError.
func (m *ReviewModel) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	return collectReview(m.DB.Query(ctx, `
	WITH r AS (
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	)
	SELECT `+reviewProjection+`
	FROM r JOIN users u ON u.id = r.author_id JOIN titles t ON t.id = r.title_id`,
		review.TitleID, review.AuthorID, review.Text, review.Score,
	))
}

func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	return collectReview(m.DB.Query(ctx, `
	WITH r AS (
		UPDATE reviews SET text = $1, score = $2
		WHERE id = $3
		RETURNING *
	)
	SELECT `+reviewProjection+`
	FROM r JOIN users u ON u.id = r.author_id JOIN titles t ON t.id = r.title_id`,
		review.Text, review.Score, review.ID,
	))
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
