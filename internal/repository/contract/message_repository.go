package contract

import (
	"context"
	"time"

	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteAllByUserId removes every message the user owns across all
	// sessions and reports how many rows went away.
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountGroupByRole(ctx context.Context, specs ...specification.Specification) (map[string]int64, error)
	FirstCreatedAt(ctx context.Context, specs ...specification.Specification) (*time.Time, error)
}
