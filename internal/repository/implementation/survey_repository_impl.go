package implementation

import (
	"context"
	"errors"

	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/mapper"
	"humanlenk-be/internal/model"
	"humanlenk-be/internal/repository/contract"
	"humanlenk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SurveyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SurveyMapper
}

func NewSurveyRepository(db *gorm.DB) contract.SurveyRepository {
	return &SurveyRepositoryImpl{
		db:     db,
		mapper: mapper.NewSurveyMapper(),
	}
}

func (r *SurveyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SurveyRepositoryImpl) Create(ctx context.Context, survey *entity.Survey) error {
	m := r.mapper.ToModel(survey)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*survey = *r.mapper.ToEntity(m)
	return nil
}

func (r *SurveyRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Survey, error) {
	var m model.Survey
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SurveyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Survey, error) {
	var models []*model.Survey
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Survey, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SurveyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Survey{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SurveyRepositoryImpl) AverageRating(ctx context.Context) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&model.Survey{}).
		Select("avg(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *SurveyRepositoryImpl) CountGroupByRating(ctx context.Context) (map[int]int64, error) {
	type row struct {
		Rating int
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.Survey{}).
		Select("rating, count(id) as total").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[int]int64, len(rows))
	for _, rw := range rows {
		result[rw.Rating] = rw.Total
	}
	return result, nil
}
