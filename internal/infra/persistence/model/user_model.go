// Package model holds the GORM persistence models. They never leave the persistence layer.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The ID is a database-generated sequence.
type UserModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(60);not null"`
	Firstname string `gorm:"type:varchar(255);not null"`
	Lastname  string `gorm:"type:varchar(255);not null"`
	UserRole  string `gorm:"column:user_role;type:varchar(20);index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Teacher *TeacherModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// TeacherModel mirrors the 'teachers' table. UserID references users.id.
type TeacherModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"uniqueIndex;not null"`
	PhoneNumber string `gorm:"type:varchar(15);not null"`
	Institution string `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TeacherModel) TableName() string {
	return "teachers"
}

// All lists every model for schema migration.
func All() []any {
	return []any{&UserModel{}, &TeacherModel{}}
}
