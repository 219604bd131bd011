package specification

import (
	"gorm.io/gorm"
)

type ByFileStatus struct {
	Status string
}

func (s ByFileStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByFileType struct {
	Type string
}

func (s ByFileType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type ILIKE ?", "%"+s.Type+"%")
}
