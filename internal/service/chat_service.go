package service

import (
	"context"
	"time"

	"humanlenk-be/internal/constant"
	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/pkg/logger"
	"humanlenk-be/internal/repository/specification"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/pkg/chat"
	"humanlenk-be/pkg/completion"

	"github.com/google/uuid"
)

const defaultMessagesPageSize = 50

// emptySessionPreview fills the sidebar preview for sessions without messages.
const emptySessionPreview = "No messages yet"

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.SessionListItem, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetMessages(ctx context.Context, userId uuid.UUID, req *dto.GetMessagesRequest) (*dto.MessagesPageResponse, error)
	DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error
	ClearMessages(ctx context.Context, userId uuid.UUID) (*dto.DeleteAllMessagesResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   completion.Provider // nil when no provider is configured
	assembler  *chat.Assembler
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	provider completion.Provider,
	assembler *chat.Assembler,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		provider:   provider,
		assembler:  assembler,
		logger:     sysLogger,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = constant.DefaultSessionTitle
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SessionResponse{
		Id:        session.Id,
		Title:     session.Title,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) ([]dto.SessionListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SessionListItem, 0, len(sessions))
	for _, session := range sessions {
		count, err := uow.MessageRepository().Count(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
		)
		if err != nil {
			return nil, err
		}

		item := dto.SessionListItem{
			Id:           session.Id,
			Title:        session.Title,
			LastMessage:  emptySessionPreview,
			Timestamp:    session.UpdatedAt,
			MessageCount: count,
		}

		if count > 0 {
			latest, err := uow.MessageRepository().FindAll(ctx,
				specification.ByChatSessionID{ChatSessionID: session.Id},
				specification.OrderBy{Field: "created_at", Desc: true},
				specification.Pagination{Limit: 1},
			)
			if err != nil {
				return nil, err
			}
			if len(latest) > 0 {
				item.LastMessage = latest[0].Content
			}
		}

		items = append(items, item)
	}

	return items, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("Chat session not found")
	}

	// messages go with it via FK cascade
	return uow.ChatSessionRepository().Delete(ctx, session.Id)
}

// SendMessage runs one chat turn. The three writes are deliberately not
// wrapped in a transaction: a stored user message survives even when the
// assistant reply fails to persist.
func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatSessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Chat session not found")
	}

	var file *entity.File
	if req.FileId != nil {
		file, err = uow.FileRepository().FindOne(ctx,
			specification.ByID{ID: *req.FileId},
			specification.OwnedBy{UserID: userId},
			specification.ByFileStatus{Status: constant.FileStatusCompleted},
		)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, apperror.NotFound("File not found or not accessible")
		}
	}

	userMessage := &entity.Message{
		Id:            uuid.New(),
		Content:       req.Message,
		Role:          constant.MessageRoleUser,
		UserId:        userId,
		ChatSessionId: session.Id,
		FileId:        req.FileId,
		CreatedAt:     time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	reply := s.generateReply(ctx, uow, userId, session.Id, req.Message, file)

	assistantMessage := &entity.Message{
		Id:            uuid.New(),
		Content:       reply,
		Role:          constant.MessageRoleAssistant,
		UserId:        userId,
		ChatSessionId: session.Id,
		FileId:        req.FileId,
		CreatedAt:     time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := uow.ChatSessionRepository().Touch(ctx, session.Id); err != nil {
		s.logger.Warn("ChatService", "Failed to touch session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	userMessage.File = file
	assistantMessage.File = file

	return &dto.SendMessageResponse{
		UserMessage:      toMessageResponse(userMessage),
		AssistantMessage: toMessageResponse(assistantMessage),
	}, nil
}

// generateReply assembles the context window and calls the provider. Every
// failure mode collapses into the fixed fallback reply; the reason is only
// logged.
func (s *chatService) generateReply(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID, newMessage string, file *entity.File) string {
	recent, err := uow.MessageRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.ChatHistoryFetchLimit},
	)
	if err != nil {
		s.logger.Error("ChatService", "Failed to load chat history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return constant.ChatFallbackReply
	}

	history := make([]completion.Message, 0, len(recent))
	for _, msg := range recent {
		history = append(history, completion.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var fileRef *chat.FileRef
	if file != nil {
		fileRef = &chat.FileRef{Name: file.Name, Type: file.Type}
	}

	prompt := s.assembler.Assemble(history, newMessage, fileRef)

	result := completion.Complete(ctx, s.provider, prompt)
	if result.Degraded {
		details := map[string]interface{}{
			"user_id": userId.String(),
			"reason":  result.Reason,
		}
		if result.Err != nil {
			details["error"] = result.Err.Error()
		}
		if result.Reason == completion.ReasonNotConfigured {
			s.logger.Warn("ChatService", "Completion provider not configured, using fallback reply", details)
		} else {
			s.logger.Error("ChatService", "Completion provider failed, using fallback reply", details)
		}
		return constant.ChatFallbackReply
	}

	s.logger.Info("ChatService", "Completion successful", map[string]interface{}{
		"user_id":         userId.String(),
		"message_length":  len(newMessage),
		"response_length": len(result.Text),
	})
	return result.Text
}

func (s *chatService) GetMessages(ctx context.Context, userId uuid.UUID, req *dto.GetMessagesRequest) (*dto.MessagesPageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: req.ChatSessionId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Chat session not found")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagesPageSize
	}

	scope := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		specification.ByChatSessionID{ChatSessionID: session.Id},
	}

	total, err := uow.MessageRepository().Count(ctx, scope...)
	if err != nil {
		return nil, err
	}

	// page from the newest end, then flip back to chronological order so
	// offset 0 is always the recent tail of the conversation
	messages, err := uow.MessageRepository().FindAll(ctx, append(scope,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)...)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		items = append(items, toMessageResponse(msg))
	}

	return &dto.MessagesPageResponse{
		Messages:   items,
		Pagination: dto.NewPagination(total, limit, req.Offset),
	}, nil
}

func (s *chatService) DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx,
		specification.ByID{ID: messageId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NotFound("Message not found")
	}

	return uow.MessageRepository().Delete(ctx, message.Id)
}

func (s *chatService) ClearMessages(ctx context.Context, userId uuid.UUID) (*dto.DeleteAllMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.MessageRepository().DeleteAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.DeleteAllMessagesResponse{DeletedCount: deleted}, nil
}

func (s *chatService) Stats(ctx context.Context, userId uuid.UUID) (*dto.ChatStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	owned := specification.OwnedBy{UserID: userId}

	total, err := uow.MessageRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}

	byRole, err := uow.MessageRepository().CountGroupByRole(ctx, owned)
	if err != nil {
		return nil, err
	}

	first, err := uow.MessageRepository().FirstCreatedAt(ctx, owned)
	if err != nil {
		return nil, err
	}

	return &dto.ChatStatsResponse{
		TotalMessages:    total,
		MessagesByRole:   byRole,
		FirstMessageDate: first,
	}, nil
}

func toMessageResponse(msg *entity.Message) dto.MessageResponse {
	res := dto.MessageResponse{
		Id:            msg.Id,
		Content:       msg.Content,
		Role:          msg.Role,
		ChatSessionId: msg.ChatSessionId,
		FileId:        msg.FileId,
		CreatedAt:     msg.CreatedAt,
	}
	if msg.File != nil {
		res.File = &dto.FileRefShort{
			Id:   msg.File.Id,
			Name: msg.File.Name,
			Type: msg.File.Type,
		}
	}
	return res
}
