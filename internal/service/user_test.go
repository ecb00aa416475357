package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/model"
	"github.com/Payphone-Digital/accounts/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.users.Register(ctx, &dto.RegisterRequest{
		Email:     "  Jane.Doe@Example.COM ",
		Password:  "password123",
		FirstName: "  Jane ",
		LastName:  "Doe  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", res.User.Email)
	assert.Equal(t, "Jane", res.User.FirstName)
	assert.Equal(t, "Doe", res.User.LastName)
	assert.Equal(t, constants.RoleUser, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.Nil(t, res.User.LastLogin)
	assert.Len(t, res.User.ID, 36)

	userID, err := env.jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	stored, err := env.repo.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, password.Check(stored.PasswordHash, "password123"))
}

func TestRegister_LongAndMultibytePasswords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i, pw := range []string{strings.Repeat("x", 80), "éééééééé"} {
		email := fmt.Sprintf("pw%d@example.com", i)
		_, err := env.users.Register(ctx, &dto.RegisterRequest{
			Email:     email,
			Password:  pw,
			FirstName: "Long",
			LastName:  "Password",
		})
		require.NoError(t, err)

		res, err := env.users.Login(ctx, &dto.LoginRequest{Email: email, Password: pw})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "dup@example.com")

	_, err := env.users.Register(context.Background(), &dto.RegisterRequest{
		Email:     " DUP@Example.com",
		Password:  "password123",
		FirstName: "Again",
		LastName:  "User",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     dto.RegisterRequest
		message string
	}{
		{
			name:    "missing email",
			req:     dto.RegisterRequest{Password: "password123", FirstName: "A", LastName: "B"},
			message: "email is required",
		},
		{
			name:    "missing last name",
			req:     dto.RegisterRequest{Email: "a@b.co", Password: "password123", FirstName: "A"},
			message: "lastName is required",
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Email: "short@b.co", Password: "1234567", FirstName: "A", LastName: "B"},
			message: "Password must be at least 8 characters long",
		},
		{
			name:    "multibyte password counted in characters",
			req:     dto.RegisterRequest{Email: "accent@b.co", Password: "éééé", FirstName: "A", LastName: "B"},
			message: "Password must be at least 8 characters long",
		},
		{
			name:    "blank email",
			req:     dto.RegisterRequest{Email: "   ", Password: "password123", FirstName: "A", LastName: "B"},
			message: "email is required",
		},
		{
			name:    "blank first name",
			req:     dto.RegisterRequest{Email: "blank@b.co", Password: "password123", FirstName: "  ", LastName: "B"},
			message: "firstName is required",
		},
		{
			name:    "blank last name",
			req:     dto.RegisterRequest{Email: "blank@b.co", Password: "password123", FirstName: "A", LastName: " "},
			message: "lastName is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(ctx, &tt.req)
			require.Error(t, err)
			assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
			assert.Equal(t, tt.message, apperrors.GetErrorMessage(err, ""))
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count, "rejected registrations create nothing")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "login@example.com")

	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	env.users.now = func() time.Time { return fixed }

	res, err := env.users.Login(ctx, &dto.LoginRequest{Email: " LOGIN@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, res.User.ID)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, fixed.Equal(*res.User.LastLogin))

	stored, err := env.repo.GetByID(ctx, registered.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, fixed.Equal(stored.LastLogin.UTC()))

	userID, err := env.jwt.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)
}

func TestLogin_WrongPasswordLeavesLastLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "wrong@example.com")

	_, err := env.users.Login(ctx, &dto.LoginRequest{Email: "wrong@example.com", Password: "not-the-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 401, apperrors.ToHTTPStatus(err))

	stored, err := env.repo.GetByID(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastLogin)

	_, err = env.users.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = env.users.Login(ctx, &dto.LoginRequest{Email: "wrong@example.com"})
	assert.Equal(t, constants.MsgCredentialsRequired, apperrors.GetErrorMessage(err, ""))
}

func TestLogin_InactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "inactive@example.com")
	require.NoError(t, env.repo.SetActive(ctx, registered.User.ID, false))

	_, err := env.users.Login(ctx, &dto.LoginRequest{Email: "inactive@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
	assert.Equal(t, 401, apperrors.ToHTTPStatus(err))
}

func TestUpdateProfile_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := env.register(t, "profile@example.com")

	before, err := env.users.GetProfile(ctx, registered.User.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = env.users.UpdateProfile(ctx, registered.User.ID, &dto.UpdateProfileRequest{FirstName: strPtr("A")})
	require.NoError(t, err)

	after, err := env.users.GetProfile(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", after.FirstName)
	assert.Equal(t, "User", after.LastName)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestUpdateProfile_Email(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "taken@example.com")
	me := env.register(t, "me@example.com")

	_, err := env.users.UpdateProfile(ctx, me.User.ID, &dto.UpdateProfileRequest{Email: strPtr("TAKEN@example.com")})
	assert.ErrorIs(t, err, apperrors.ErrEmailInUse)

	res, err := env.users.UpdateProfile(ctx, me.User.ID, &dto.UpdateProfileRequest{Email: strPtr(" ME@example.com ")})
	require.NoError(t, err, "keeping your own email is not a conflict")
	assert.Equal(t, "me@example.com", res.Email)

	res, err = env.users.UpdateProfile(ctx, me.User.ID, &dto.UpdateProfileRequest{Email: strPtr("New@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", res.Email)

	_, err = env.users.UpdateProfile(ctx, me.User.ID, &dto.UpdateProfileRequest{LastName: strPtr("   ")})
	assert.Equal(t, 400, apperrors.ToHTTPStatus(err))
}

func TestGetAll_Pagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hash, err := password.Hash("password123")
	require.NoError(t, err)
	for i := 0; i < 15; i++ {
		require.NoError(t, env.repo.Create(ctx, &model.User{
			Email:        fmt.Sprintf("user%02d@example.com", i),
			PasswordHash: hash,
			FirstName:    fmt.Sprintf("First%02d", i),
			LastName:     "Listed",
			IsActive:     true,
		}))
	}

	params := constants.PaginationParams{Page: 2, Limit: 10, Offset: 10}
	users, meta, err := env.users.GetAll(ctx, params)
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, int64(15), meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
}

func TestGetAll_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, u := range []struct{ email, first, last string }{
		{"alice@example.com", "Alice", "Smith"},
		{"bob@example.com", "Bob", "SMITHERS"},
		{"carol@corp.io", "Carol", "Jones"},
	} {
		require.NoError(t, env.repo.Create(ctx, &model.User{
			Email: u.email, PasswordHash: "x", FirstName: u.first, LastName: u.last, IsActive: true,
		}))
	}

	users, meta, err := env.users.GetAll(ctx, constants.PaginationParams{Page: 1, Limit: 10, Search: "smith"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	assert.Len(t, users, 2)

	users, _, err = env.users.GetAll(ctx, constants.PaginationParams{Page: 1, Limit: 10, Search: "CORP"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol@corp.io", users[0].Email)

	require.NoError(t, env.repo.Create(ctx, &model.User{
		Email: "emile@example.fr", PasswordHash: "x", FirstName: "Émile", LastName: "Zola", IsActive: true,
	}))
	users, _, err = env.users.GetAll(ctx, constants.PaginationParams{Page: 1, Limit: 10, Search: "Émile"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Émile", users[0].FirstName)

	users, meta, err = env.users.GetAll(ctx, constants.PaginationParams{Page: 1, Limit: 10, Search: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestGetByID(t *testing.T) {
	env := newTestEnv(t)
	registered := env.register(t, "byid@example.com")

	user, err := env.users.GetByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "byid@example.com", user.Email)

	_, err = env.users.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeleteUser_LastAdminGuard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.makeAdmin(t, "admin1@example.com")

	err := env.users.DeleteUser(ctx, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin)
	assert.Equal(t, 400, apperrors.ToHTTPStatus(err))

	second := env.makeAdmin(t, "admin2@example.com")

	require.NoError(t, env.users.DeleteUser(ctx, second.ID))
	_, err = env.users.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	err = env.users.DeleteUser(ctx, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin, "first admin is the last one again")
}

func TestDeleteUser_InactiveAdminsDoNotCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	active := env.makeAdmin(t, "active@example.com")
	dormant := env.makeAdmin(t, "dormant@example.com")
	require.NoError(t, env.repo.SetActive(ctx, dormant.ID, false))

	assert.ErrorIs(t, env.users.DeleteUser(ctx, active.ID), apperrors.ErrLastAdmin)
}

func TestDeleteUser_RegularAndMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	plain := env.register(t, "plain@example.com")
	require.NoError(t, env.users.DeleteUser(ctx, plain.User.ID))

	err := env.users.DeleteUser(ctx, plain.User.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Equal(t, 404, apperrors.ToHTTPStatus(err))
}
