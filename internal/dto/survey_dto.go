package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitSurveyRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"required,min=1,max=1000"`
}

type SurveyResponse struct {
	Id        uuid.UUID `json:"id"`
	Rating    int       `json:"rating"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

type SurveyStatsResponse struct {
	TotalSurveys       int64         `json:"totalSurveys"`
	AverageRating      float64       `json:"averageRating"`
	RatingDistribution map[int]int64 `json:"ratingDistribution"`
}
