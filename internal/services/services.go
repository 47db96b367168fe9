package services

import (
	"log/slog"
	"yamdb/proj/internal/config"
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/mails"
	"yamdb/proj/internal/services/auth"
	"yamdb/proj/internal/services/catalog"
	"yamdb/proj/internal/services/reviews"
	"yamdb/proj/internal/services/titles"
	"yamdb/proj/internal/services/users"
	"yamdb/proj/internal/storage/memory"
	pgmodels "yamdb/proj/internal/storage/postgres/models"
)

type (
	UserStorage interface {
		auth.UserStorage
		users.UserStorage
	}
	CategoryStorage interface {
		catalog.Storage[models.Category]
		titles.CategoryStorage
	}
	GenreStorage interface {
		catalog.Storage[models.Genre]
		titles.GenreStorage
	}
	TitleStorage interface {
		titles.TitleStorage
		reviews.TitleStorage
	}
)

// Storage is the set of tables the services run on, backed by either
// Postgres or the in-memory store.
type Storage struct {
	Users      UserStorage
	Categories CategoryStorage
	Genres     GenreStorage
	Titles     TitleStorage
	Reviews    reviews.ReviewStorage
	Comments   reviews.CommentStorage
}

func FromPostgres(m *pgmodels.Models) Storage {
	return Storage{
		Users:      m.User,
		Categories: m.Category,
		Genres:     m.Genre,
		Titles:     m.Title,
		Reviews:    m.Review,
		Comments:   m.Comment,
	}
}

func FromMemory(s *memory.Store) Storage {
	return Storage{
		Users:      s.User,
		Categories: s.Category,
		Genres:     s.Genre,
		Titles:     s.Title,
		Reviews:    s.Review,
		Comments:   s.Comment,
	}
}

func NewMailer(log *slog.Logger, cfg config.Mail) auth.MailProvider {
	if cfg.Backend == "log" {
		return &mails.LogMailer{Log: log, Sender: cfg.Sender}
	}
	return mails.New(cfg.Host, cfg.Port, cfg.Timeout, cfg.Username, cfg.Password, cfg.Sender)
}

type Services struct {
	Auth       *auth.AuthService
	Users      *users.UserService
	Categories *catalog.CategoryService
	Genres     *catalog.GenreService
	Titles     *titles.TitleService
	Reviews    *reviews.ReviewService
	Comments   *reviews.CommentService
}

func New(log *slog.Logger, cfg *config.Config, storage Storage, mailer auth.MailProvider) *Services {
	reviewService := reviews.New(log, storage.Titles, storage.Reviews)
	return &Services{
		Auth: auth.New(log, mailer, storage.Users, auth.Options{
			Secret:         cfg.AppSecret,
			CodeLength:     cfg.Auth.CodeLength,
			CodeTTL:        cfg.Auth.CodeTTL,
			AccessTokenTTL: cfg.Auth.AccessTokenTTL,
		}),
		Users:      users.New(log, storage.Users),
		Categories: catalog.NewCategories(log, storage.Categories),
		Genres:     catalog.NewGenres(log, storage.Genres),
		Titles:     titles.New(log, storage.Titles, storage.Categories, storage.Genres),
		Reviews:    reviewService,
		Comments:   reviews.NewComments(log, reviewService, storage.Comments),
	}
}
