package unitofwork

import (
	"context"

	"humanlenk-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatSessionRepository() contract.ChatSessionRepository
	MessageRepository() contract.MessageRepository
	FileRepository() contract.FileRepository
	SurveyRepository() contract.SurveyRepository
}
