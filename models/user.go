package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Phone        string    `gorm:"size:40;uniqueIndex;not null" json:"phone"`
	DateCreation time.Time `gorm:"not null" json:"dateCreation"`

	RoleID uint  `gorm:"index;not null" json:"roleId"`
	Role   *Role `gorm:"foreignKey:RoleID" json:"-"`
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:20;uniqueIndex;not null" json:"name"`
}

// Role names seeded at install time and referenced by the authorizer.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
