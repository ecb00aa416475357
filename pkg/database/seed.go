package database

import (
	"context"
	"strings"

	"github.com/Payphone-Digital/accounts/config"
	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/model"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/password"
	"gorm.io/gorm"
)

// SeedAdmin creates the configured admin account when the users table holds
// no admin at all. It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, admin config.AdminConfig) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return false, err
	}

	if count > 0 {
		return false, nil
	}

	hashedPassword, err := password.Hash(admin.Password)
	if err != nil {
		return false, err
	}

	user := model.User{
		Email:        strings.ToLower(strings.TrimSpace(admin.Email)),
		PasswordHash: hashedPassword,
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		Role:         constants.RoleAdmin,
		IsActive:     true,
	}

	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return false, err
	}

	logger.WarnWithContext(ctx, "Default admin user created, change its password").
		String("email", user.Email).
		Log()

	return true, nil
}
