package contract

import (
	"context"

	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/repository/specification"
)

type SurveyRepository interface {
	Create(ctx context.Context, survey *entity.Survey) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Survey, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Survey, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	AverageRating(ctx context.Context) (float64, error)
	CountGroupByRating(ctx context.Context) (map[int]int64, error)
}
