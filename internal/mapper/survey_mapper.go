package mapper

import (
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/model"
)

type SurveyMapper struct{}

func NewSurveyMapper() *SurveyMapper {
	return &SurveyMapper{}
}

func (m *SurveyMapper) ToEntity(s *model.Survey) *entity.Survey {
	if s == nil {
		return nil
	}
	return &entity.Survey{
		Id:        s.Id,
		UserId:    s.UserId,
		Rating:    s.Rating,
		Feedback:  s.Feedback,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SurveyMapper) ToModel(s *entity.Survey) *model.Survey {
	if s == nil {
		return nil
	}
	return &model.Survey{
		Id:        s.Id,
		UserId:    s.UserId,
		Rating:    s.Rating,
		Feedback:  s.Feedback,
		CreatedAt: s.CreatedAt,
	}
}
