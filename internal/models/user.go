package models

import "time"

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-" gorm:"not null"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UserRegister struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is the cached view of an authenticated user.
type Session struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

func (u *User) Session() Session {
	return Session{UserID: u.ID, Email: u.Email, FullName: u.FullName, IsActive: u.IsActive}
}

func (s Session) User() *User {
	return &User{ID: s.UserID, Email: s.Email, FullName: s.FullName, IsActive: s.IsActive}
}
