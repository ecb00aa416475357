package model

import (
	"time"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"column:id;type:varchar(36);primaryKey"`
	Email        string     `gorm:"column:email;type:varchar(120);uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string     `gorm:"column:first_name;type:varchar(50);not null"`
	LastName     string     `gorm:"column:last_name;type:varchar(50);not null"`
	Role         string     `gorm:"column:role;type:varchar(20);default:user;not null;index"`
	Avatar       *string    `gorm:"column:avatar;type:varchar(255)"`
	IsActive     bool       `gorm:"column:is_active;default:true;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the uuid primary key and the default role.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
