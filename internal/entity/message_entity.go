package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. There is deliberately no update path.
type Message struct {
	Id            uuid.UUID
	Content       string
	Role          string
	UserId        uuid.UUID
	ChatSessionId uuid.UUID
	FileId        *uuid.UUID
	File          *File // populated on reads that preload the referenced file
	CreatedAt     time.Time
}
