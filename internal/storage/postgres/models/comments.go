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

type CommentModel struct {
	DB *pgxpool.Pool
}

const commentProjection = `c.id, c.review_id, c.author_id, u.username AS author, c.text, c.pub_date`

func collectComment(rows pgx.Rows, err error) (*models.Comment, error) {
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	comment, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	return &comment, nil
}

func (m *CommentModel) Get(ctx context.Context, reviewID, id int64) (*models.Comment, error) {
	return collectComment(m.DB.Query(ctx, `
	SELECT `+commentProjection+`
	FROM comments c JOIN users u ON u.id = c.author_id
	WHERE c.id = $1 AND c.review_id = $2`, id, reviewID))
}

func (m *CommentModel) List(ctx context.Context, reviewID int64, f filters.Filters) ([]models.Comment, int, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT count(*) OVER() AS count, `+commentProjection+`
	FROM comments c JOIN users u ON u.id = c.author_id
	WHERE c.review_id = $1
	ORDER BY c.pub_date ASC, c.id ASC
	LIMIT $2 OFFSET $3`, reviewID, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int `db:"count"`
		models.Comment
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	comments := make([]models.Comment, 0, len(outputRows))
	for _, row := range outputRows {
		comments = append(comments, row.Comment)
	}
	if len(outputRows) == 0 {
		return comments, 0, nil
	}
	return comments, outputRows[0].Count, nil
}

func (m *CommentModel) Insert(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return collectComment(m.DB.Query(ctx, `
	WITH c AS (
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING *
	)
	SELECT `+commentProjection+`
	FROM c JOIN users u ON u.id = c.author_id`,
		comment.ReviewID, comment.AuthorID, comment.Text,
	))
}

func (m *CommentModel) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	return collectComment(m.DB.Query(ctx, `
	WITH c AS (
		UPDATE comments SET text = $1 WHERE id = $2 RETURNING *
	)
	SELECT `+commentProjection+`
	FROM c JOIN users u ON u.id = c.author_id`,
		comment.Text, comment.ID,
	))
}

func (m *CommentModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
