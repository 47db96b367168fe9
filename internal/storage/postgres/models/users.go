package models

import (
	"context"
	"errors"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
	"yamdb/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, first_name, last_name, bio, role,
	is_superuser, is_active, confirmation_code, code_issued_at, created_at`

type UserModel struct {
	DB *pgxpool.Pool
}

func (m *UserModel) collectOne(rows pgx.Rows, err error) (*models.User, error) {
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, postgres.TranslateErr(err)
	}
	return &user, nil
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	return m.collectOne(m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.collectOne(m.DB.Query(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// IssueConfirmationCode stores code for the identity bound to exactly this
// (username, email) pair, creating it when neither value is taken.
func (m *UserModel) IssueConfirmationCode(ctx context.Context, username, email, code string) (*models.User, error) {
	update := func() (*models.User, error) {
		return m.collectOne(m.DB.Query(ctx, `
		UPDATE users SET confirmation_code = $3, code_issued_at = now()
		WHERE username = $1 AND email = $2
		RETURNING `+userColumns, username, email, code))
	}
	user, err := update()
	if !errors.Is(err, storage.ErrNotFound) {
		return user, err
	}
	user, err = m.collectOne(m.DB.Query(ctx, `
		INSERT INTO users (username, email, confirmation_code, code_issued_at)
		VALUES ($1, $2, $3, now())
		RETURNING `+userColumns, username, email, code))
	if errors.Is(err, storage.ErrConflict) {
		// A concurrent signup for the same pair may have won the insert.
		if user, updErr := update(); updErr == nil {
			return user, nil
		}
	}
	return user, err
}

func (m *UserModel) Activate(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "UPDATE users SET is_active = true WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	return m.collectOne(m.DB.Query(ctx, `
		INSERT INTO users (username, email, first_name, last_name, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	))
}

func (m *UserModel) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT count(*) OVER() AS count, `+userColumns+` FROM users
	WHERE (username ILIKE '%' || $1 || '%' OR $1 = '')
	ORDER BY id ASC
	LIMIT $2 OFFSET $3`, search, f.Limit(), f.Offset())
	if err != nil {
		return nil, 0, err
	}
	type row struct {
		Count int `db:"count"`
		models.User
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	users := make([]models.User, 0, len(outputRows))
	for _, row := range outputRows {
		users = append(users, row.User)
	}
	if len(outputRows) == 0 {
		return users, 0, nil
	}
	return users, outputRows[0].Count, nil
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	return m.collectOne(m.DB.Query(ctx, `
		UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4, bio = $5, role = $6
		WHERE id = $7
		RETURNING `+userColumns,
		user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.ID,
	))
}

func (m *UserModel) Delete(ctx context.Context, username string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE username = $1", username)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
