package models

import (
	"time"
)

// User is an identity-provider backed account. The ID is assigned by the
// provider (e.g. "google:<sub>") and never changes.
type User struct {
	ID              string    `json:"id" gorm:"type:varchar(255);primaryKey"`
	Email           *string   `json:"email" gorm:"uniqueIndex"`
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	IsAdmin         bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// UpsertUser carries the fields written by an insert-or-update. Nil pointers
// are left untouched on an existing row.
type UpsertUser struct {
	ID              string  `json:"id" validate:"required"`
	Email           *string `json:"email" validate:"omitempty,email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	IsAdmin         *bool   `json:"isAdmin"`
}

// Row builds the row to insert along with the columns an existing row
// should take from it.
func (u UpsertUser) Row() (User, []string) {
	user := User{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}
	var columns []string
	if u.Email != nil {
		columns = append(columns, "email")
	}
	if u.FirstName != nil {
		columns = append(columns, "first_name")
	}
	if u.LastName != nil {
		columns = append(columns, "last_name")
	}
	if u.ProfileImageURL != nil {
		columns = append(columns, "profile_image_url")
	}
	if u.IsAdmin != nil {
		user.IsAdmin = *u.IsAdmin
		columns = append(columns, "is_admin")
	}
	return user, append(columns, "updated_at")
}
