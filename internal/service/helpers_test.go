package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Payphone-Digital/accounts/config"
	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	"github.com/Payphone-Digital/accounts/internal/model"
	"github.com/Payphone-Digital/accounts/internal/repository"
	"github.com/Payphone-Digital/accounts/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	repo   *repository.UserRepository
	jwt    *JWTService
	users  *UserService
	access *AccessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Environment: constants.EnvTest},
		Database: config.DatabaseConfig{
			URL:          "sqlite://" + filepath.Join(t.TempDir(), "service.db"),
			MaxIdleConns: 1,
			MaxOpenConns: 1,
		},
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })
	require.NoError(t, database.AutoMigrate(db))

	repo := repository.NewUserRepository(db)
	jwtService := NewJWTService("test-secret", 7*24*time.Hour)

	return &testEnv{
		db:     db,
		repo:   repo,
		jwt:    jwtService,
		users:  NewUserService(repo, jwtService),
		access: NewAccessService(jwtService, repo),
	}
}

func (e *testEnv) register(t *testing.T, email string) *dto.AuthResponse {
	t.Helper()
	res, err := e.users.Register(context.Background(), &dto.RegisterRequest{
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) makeAdmin(t *testing.T, email string) *model.User {
	t.Helper()
	res := e.register(t, email)
	require.NoError(t, e.db.Model(&model.User{}).Where("id = ?", res.User.ID).Update("role", constants.RoleAdmin).Error)

	user, err := e.repo.GetByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	return user
}
