package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=255"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListItem adds the sidebar preview fields to a session.
type SessionListItem struct {
	Id           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"lastMessage"`
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int64     `json:"messageCount"`
}

type SendMessageRequest struct {
	Message       string     `json:"message" validate:"required,min=1,max=4000"`
	ChatSessionId uuid.UUID  `json:"chatSessionId" validate:"required"`
	FileId        *uuid.UUID `json:"fileId" validate:"omitempty"`
}

type MessageResponse struct {
	Id            uuid.UUID     `json:"id"`
	Content       string        `json:"content"`
	Role          string        `json:"role"`
	ChatSessionId uuid.UUID     `json:"chatSessionId"`
	FileId        *uuid.UUID    `json:"fileId,omitempty"`
	File          *FileRefShort `json:"file,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FileRefShort names the referenced file inline with a message.
type FileRefShort struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

type SendMessageResponse struct {
	UserMessage      MessageResponse `json:"userMessage"`
	AssistantMessage MessageResponse `json:"assistantMessage"`
}

type GetMessagesRequest struct {
	ChatSessionId uuid.UUID `query:"chatSessionId" validate:"required"`
	Limit         int       `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset        int       `query:"offset" validate:"omitempty,min=0"`
}

type MessagesPageResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination Pagination        `json:"pagination"`
}

type DeleteAllMessagesResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type ChatStatsResponse struct {
	TotalMessages    int64            `json:"totalMessages"`
	MessagesByRole   map[string]int64 `json:"messagesByRole"`
	FirstMessageDate *time.Time       `json:"firstMessageDate"`
}
