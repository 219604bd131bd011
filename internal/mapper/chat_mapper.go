package mapper

import (
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session mappers

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message mappers

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:            msg.Id,
		Content:       msg.Content,
		Role:          msg.Role,
		UserId:        msg.UserId,
		ChatSessionId: msg.ChatSessionId,
		FileId:        msg.FileId,
		File:          NewFileMapper().ToEntity(msg.File),
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:            msg.Id,
		Content:       msg.Content,
		Role:          msg.Role,
		UserId:        msg.UserId,
		ChatSessionId: msg.ChatSessionId,
		FileId:        msg.FileId,
		CreatedAt:     msg.CreatedAt,
	}
}
