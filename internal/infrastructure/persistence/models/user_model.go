package models

import (
	"time"

	"github.com/eskiturk2021/api-gateway/internal/domain/users"
)

// UserModel is the GORM database model for users
type UserModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Username     string     `gorm:"uniqueIndex;size:50;not null"`
	Email        string     `gorm:"index;size:100"`
	Password     string     `gorm:"size:255;not null"`
	Role         string     `gorm:"index;size:20;not null;default:user"`
	RefreshToken string     `gorm:"type:text"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
		Role:         m.Role,
		RefreshToken: m.RefreshToken,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Username = u.Username
	m.Email = u.Email
	m.Password = u.PasswordHash
	m.Role = u.Role
	m.RefreshToken = u.RefreshToken
	m.LastLogin = u.LastLogin
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}
