package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/lib/confcode"
	"yamdb/proj/internal/lib/jwt"
	"yamdb/proj/internal/mails"
	"yamdb/proj/internal/storage"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type UserStorage interface {
	IssueConfirmationCode(ctx context.Context, username, email, code string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Activate(ctx context.Context, id int64) error
}

type Options struct {
	Secret         string
	CodeLength     int
	CodeTTL        time.Duration
	AccessTokenTTL time.Duration
}

type AuthService struct {
	log     *slog.Logger
	mailer  MailProvider
	storage UserStorage
	opts    Options
	now     func() time.Time
}

func New(log *slog.Logger, mailer MailProvider, storage UserStorage, opts Options) *AuthService {
	return &AuthService{
		log:     log,
		mailer:  mailer,
		storage: storage,
		opts:    opts,
		now:     time.Now,
	}
}

func conflictErr(err error) error {
	var conflict *storage.ConflictError
	if errors.As(err, &conflict) && conflict.Constraint == storage.ConstraintEmail {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Signup issues a fresh confirmation code for the (username, email) pair and
// mails it. Any earlier code of the same user stops being valid.
func (a *AuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "username", username)
	code, err := confcode.Generate(a.opts.CodeLength)
	if err != nil {
		log.Error("Error generating confirmation code", "errMsg", err.Error())
		return nil, err
	}
	user, err := a.storage.IssueConfirmationCode(ctx, username, email, code)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("username or email bound to another user")
			return nil, conflictErr(err)
		}
		log.Error("Error storing confirmation code", "errMsg", err.Error())
		return nil, err
	}
	err = a.mailer.Send(user.Email, mails.ConfirmationCodeTmpl, map[string]any{
		"username":         user.Username,
		"confirmationCode": code,
	})
	if err != nil {
		log.Error("Error sending confirmation code", "errMsg", err.Error())
		return nil, ErrDeliveryFailed
	}
	log.Info("confirmation code issued")
	return user, nil
}

// ObtainToken exchanges a confirmation code for an access token and marks
// the user as confirmed.
func (a *AuthService) ObtainToken(ctx context.Context, username, code string) (string, error) {
	const op = "auth.AuthService.ObtainToken"
	log := a.log.With("op", op, "username", username)
	user, err := a.storage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrUserNotFound
		}
		log.Error(err.Error())
		return "", err
	}
	if !confcode.Equal(user.ConfirmationCode, code) || a.codeExpired(user) {
		log.Warn("invalid confirmation code")
		return "", ErrInvalidConfirmationCode
	}
	if !user.IsActive {
		if err := a.storage.Activate(ctx, user.ID); err != nil {
			log.Error("Error activating user", "errMsg", err.Error())
			return "", err
		}
		user.IsActive = true
	}
	token, err := jwt.NewToken(user, a.opts.Secret, a.opts.AccessTokenTTL)
	if err != nil {
		log.Error("Error signing token", "errMsg", err.Error())
		return "", err
	}
	return token, nil
}

func (a *AuthService) codeExpired(user *models.User) bool {
	if a.opts.CodeTTL <= 0 {
		return false
	}
	return user.CodeIssuedAt == nil || a.now().Sub(*user.CodeIssuedAt) > a.opts.CodeTTL
}
