package reviews

import (
	"fmt"
	"yamdb/proj/internal/domain/errs"
	"yamdb/proj/internal/domain/models"
)

var (
	ErrTitleNotFound   = fmt.Errorf("title %w", errs.ErrNotFound)
	ErrReviewNotFound  = fmt.Errorf("review %w", errs.ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", errs.ErrNotFound)
	ErrDuplicateReview = errs.Validation("non_field_errors", "You have already reviewed this title")
	ErrScoreOutOfRange = errs.Validation(
		"score", fmt.Sprintf("Score must be between %d and %d", models.MinScore, models.MaxScore),
	)
)
