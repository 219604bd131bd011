package contract

import (
	"context"

	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/repository/specification"

	"github.com/google/uuid"
)

// FileStatusStat is one row of the per-status aggregate used by the admin
// dashboard.
type FileStatusStat struct {
	Status    string
	Count     int64
	TotalSize int64
}

type FileRepository interface {
	Create(ctx context.Context, file *entity.File) error
	Update(ctx context.Context, file *entity.File) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	StatsGroupByStatus(ctx context.Context) ([]FileStatusStat, error)
}
