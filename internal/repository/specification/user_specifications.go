package specification

import (
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// SearchNameOrEmail matches the admin user-list search box: case-insensitive
// substring match on either column.
type SearchNameOrEmail struct {
	Query string
}

func (s SearchNameOrEmail) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Query + "%"
	return db.Where("email ILIKE ? OR name ILIKE ?", like, like)
}
