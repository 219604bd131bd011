package entity

import (
	"time"

	"github.com/google/uuid"
)

type Survey struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Rating    int
	Feedback  string
	CreatedAt time.Time
}
