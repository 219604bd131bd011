package mapper

import (
	"humanlenk-be/internal/entity"
	"humanlenk-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:         f.Id,
		UserId:     f.UserId,
		Name:       f.Name,
		Type:       f.Type,
		Size:       f.Size,
		URL:        f.URL,
		StorageKey: f.StorageKey,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:         f.Id,
		UserId:     f.UserId,
		Name:       f.Name,
		Type:       f.Type,
		Size:       f.Size,
		URL:        f.URL,
		StorageKey: f.StorageKey,
		Status:     f.Status,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
