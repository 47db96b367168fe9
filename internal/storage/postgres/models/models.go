package models

import (
	"yamdb/proj/internal/domain/models"
	"yamdb/proj/internal/storage/postgres"
)

type Models struct {
	User     *UserModel
	Category *CategoryModel
	Genre    *GenreModel
	Title    *TitleModel
	Review   *ReviewModel
	Comment  *CommentModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:     &UserModel{db.Conn},
		Category: &CategoryModel{taxonomyModel[models.Category]{DB: db.Conn, table: "categories"}},
		Genre:    &GenreModel{taxonomyModel[models.Genre]{DB: db.Conn, table: "genres"}},
		Title:    &TitleModel{db.Conn},
		Review:   &ReviewModel{db.Conn},
		Comment:  &CommentModel{db.Conn},
	}
}
