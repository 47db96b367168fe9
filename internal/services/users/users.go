package users

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
	ErrUserNotFound  = fmt.Errorf("user %w", errs.ErrNotFound)
	ErrUsernameTaken = errs.Conflict("username", "A user with that username already exists")
	ErrEmailTaken    = errs.Conflict("email", "A user with that email already exists")
)

type UserStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, username string) error
}

// Patch holds the optional fields of a partial profile update.
type Patch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *models.Role
}

func (p Patch) apply(u *models.User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

type UserService struct {
	log     *slog.Logger
	storage UserStorage
}

func New(log *slog.Logger, storage UserStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

func translate(err error) error {
	var conflict *storage.ConflictError
	switch {
	case errors.As(err, &conflict) && conflict.Constraint == storage.ConstraintEmail:
		return ErrEmailTaken
	case errors.Is(err, storage.ErrConflict):
		return ErrUsernameTaken
	case errors.Is(err, storage.ErrNotFound):
		return ErrUserNotFound
	}
	return err
}

// GetByID resolves the identity behind an access token.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor *models.User, search string, f filters.Filters) ([]models.User, int, error) {
	const op = "users.UserService.List"
	log := s.log.With("op", op)
	if err := rbac.Authorize(actor, rbac.ActionRead, rbac.Users()); err != nil {
		return nil, 0, err
	}
	users, total, err := s.storage.List(ctx, search, f)
	if err != nil {
		log.Error(err.Error())
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserService) Create(ctx context.Context, actor *models.User, user *models.User) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op, "username", user.Username)
	if err := rbac.Authorize(actor, rbac.ActionCreate, rbac.Users()); err != nil {
		return nil, err
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	created, err := s.storage.Insert(ctx, user)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, errs.ErrConflict) {
			log.Error(err.Error())
		}
		return nil, err
	}
	log.Info("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, actor *models.User, username string) (*models.User, error) {
	if err := rbac.Authorize(actor, rbac.ActionRead, rbac.Users()); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor *models.User, username string, patch Patch) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "username", username)
	if err := rbac.Authorize(actor, rbac.ActionUpdate, rbac.Users()); err != nil {
		return nil, err
	}
	user, err := s.storage.GetByUsername(ctx, username)
	if err != nil {
		return nil, translate(err)
	}
	patch.apply(user)
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, errs.ErrConflict) && !errors.Is(err, errs.ErrNotFound) {
			log.Error(err.Error())
		}
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor *models.User, username string) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "username", username)
	if err := rbac.Authorize(actor, rbac.ActionDelete, rbac.Users()); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, username); err != nil {
		return translate(err)
	}
	log.Info("user deleted")
	return nil
}

func (s *UserService) GetMe(ctx context.Context, actor *models.User) (*models.User, error) {
	if err := rbac.Authorize(actor, rbac.ActionRead, rbac.Profile()); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, actor.ID)
}

// UpdateMe applies patch to the caller's own profile. The role can only be
// changed through the admin-facing Update.
func (s *UserService) UpdateMe(ctx context.Context, actor *models.User, patch Patch) (*models.User, error) {
	const op = "users.UserService.UpdateMe"
	log := s.log.With("op", op, "user_id", actor.ID)
	if err := rbac.Authorize(actor, rbac.ActionUpdate, rbac.Profile()); err != nil {
		return nil, err
	}
	user, err := s.storage.Get(ctx, actor.ID)
	if err != nil {
		return nil, translate(err)
	}
	patch.Role = nil
	patch.apply(user)
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, errs.ErrConflict) {
			log.Error(err.Error())
		}
		return nil, err
	}
	return updated, nil
}
