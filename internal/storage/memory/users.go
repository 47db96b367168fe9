package memory

import (
	"context"
	"yamdb/proj/internal/domain/filters"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage"
)

type UserStore struct {
	*db
}

func (s *UserStore) findBy(match func(models.User) bool) (models.User, bool) {
	for _, u := range s.users {
		if match(u) {
			return u, true
		}
	}
	return models.User{}, false
}

// checkUnique reports the constraint a user with this username/email would
// violate, ignoring the row with id skipID.
func (s *UserStore) checkUnique(skipID int64, username, email string) error {
	for _, u := range s.users {
		if u.ID == skipID {
			continue
		}
		if u.Username == username {
			return &storage.ConflictError{Constraint: storage.ConstraintUsername}
		}
		if u.Email == email {
			return &storage.ConflictError{Constraint: storage.ConstraintEmail}
		}
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.findBy(func(u models.User) bool { return u.Username == username })
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) IssueConfirmationCode(ctx context.Context, username, email, code string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	u, ok := s.findBy(func(u models.User) bool { return u.Username == username && u.Email == email })
	if !ok {
		if err := s.checkUnique(0, username, email); err != nil {
			return nil, err
		}
		u = models.User{
			ID:        s.nextID(),
			Username:  username,
			Email:     email,
			Role:      models.RoleUser,
			CreatedAt: now,
		}
	}
	u.ConfirmationCode = &code
	u.CodeIssuedAt = &now
	s.users[u.ID] = u
	return &u, nil
}

func (s *UserStore) Activate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.IsActive = true
	s.users[id] = u
	return nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(0, user.Username, user.Email); err != nil {
		return nil, err
	}
	u := *user
	u.ID = s.nextID()
	u.CreatedAt = s.now()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *UserStore) List(ctx context.Context, search string, f filters.Filters) ([]models.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := sortedIDs(s.users, func(u models.User) bool { return containsFold(u.Username, search) })
	ids, total := page(ids, f)
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, s.users[id])
	}
	return users, total, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if err := s.checkUnique(user.ID, user.Username, user.Email); err != nil {
		return nil, err
	}
	u.Username = user.Username
	u.Email = user.Email
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Bio = user.Bio
	u.Role = user.Role
	s.users[u.ID] = u
	return &u, nil
}

func (s *UserStore) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.findBy(func(u models.User) bool { return u.Username == username })
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.users, u.ID)
	s.deleteComments(func(c models.Comment) bool { return c.AuthorID != u.ID })
	s.deleteReviews(func(r models.Review) bool { return r.AuthorID != u.ID })
	return nil
}
