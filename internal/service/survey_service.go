package service

import (
	"context"
	"math"
	"time"

	"humanlenk-be/internal/dto"
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/pkg/apperror"
	"humanlenk-be/internal/repository/specification"
	"humanlenk-be/internal/repository/unitofwork"
	"humanlenk-be/pkg/events"

	"github.com/google/uuid"
)

// surveyCooldown is the rolling window within which a user may submit at
// most one survey.
const surveyCooldown = 24 * time.Hour

type ISurveyService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitSurveyRequest) (*dto.SurveyResponse, error)
	My(ctx context.Context, userId uuid.UUID) ([]dto.SurveyResponse, error)
	Stats(ctx context.Context) (*dto.SurveyStatsResponse, error)
}

type surveyService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
}

func NewSurveyService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) ISurveyService {
	return &surveyService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (s *surveyService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitSurveyRequest) (*dto.SurveyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recent, err := uow.SurveyRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.CreatedSince{Cutoff: time.Now().Add(-surveyCooldown)},
	)
	if err != nil {
		return nil, err
	}
	if recent > 0 {
		return nil, apperror.TooManyRequests("You can only submit one survey per 24 hours")
	}

	survey := &entity.Survey{
		Id:        uuid.New(),
		UserId:    userId,
		Rating:    req.Rating,
		Feedback:  req.Feedback,
		CreatedAt: time.Now(),
	}

	if err := uow.SurveyRepository().Create(ctx, survey); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeSurveySubmitted,
			Data: map[string]interface{}{
				"user_id":   userId.String(),
				"survey_id": survey.Id.String(),
				"rating":    survey.Rating,
			},
			OccurredAt: time.Now(),
		}
		_ = s.publisher.Publish(ctx, evt)
	}

	res := toSurveyResponse(survey)
	return &res, nil
}

func (s *surveyService) My(ctx context.Context, userId uuid.UUID) ([]dto.SurveyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	surveys, err := uow.SurveyRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SurveyResponse, 0, len(surveys))
	for _, survey := range surveys {
		items = append(items, toSurveyResponse(survey))
	}
	return items, nil
}

func (s *surveyService) Stats(ctx context.Context) (*dto.SurveyStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.SurveyRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	average, err := uow.SurveyRepository().AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	byRating, err := uow.SurveyRepository().CountGroupByRating(ctx)
	if err != nil {
		return nil, err
	}

	// every rating bucket is present, even at zero
	distribution := make(map[int]int64, 5)
	for rating := 1; rating <= 5; rating++ {
		distribution[rating] = byRating[rating]
	}

	return &dto.SurveyStatsResponse{
		TotalSurveys:       total,
		AverageRating:      math.Round(average*100) / 100,
		RatingDistribution: distribution,
	}, nil
}

func toSurveyResponse(survey *entity.Survey) dto.SurveyResponse {
	return dto.SurveyResponse{
		Id:        survey.Id,
		Rating:    survey.Rating,
		Feedback:  survey.Feedback,
		CreatedAt: survey.CreatedAt,
	}
}
