package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"type:varchar(100);uniqueIndex" json:"user_id"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Avatar       *string   `gorm:"type:varchar(255)" json:"avatar"`
	Phone        *string   `gorm:"type:varchar(20)" json:"phone"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	Token        *string   `gorm:"type:text" json:"-"`
	RefreshToken *string   `gorm:"type:text" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff      bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AfterCreate derives the public user id from the primary key.
func (u *User) AfterCreate(tx *gorm.DB) error {
	if u.UserID != "" {
		return nil
	}
	u.UserID = fmt.Sprintf("user_%d", u.ID)
	return tx.Model(u).UpdateColumn("user_id", u.UserID).Error
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Avatar    *string   `json:"avatar"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
