package service

import (
	"context"

	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/model"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
)

// UserFinder is the lookup the access checks need from storage.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AccessService resolves bearer tokens to users and enforces roles. It is
// read-only: authenticating never touches last_login.
type AccessService struct {
	jwt   *JWTService
	users UserFinder
}

func NewAccessService(jwtService *JWTService, users UserFinder) *AccessService {
	return &AccessService{jwt: jwtService, users: users}
}

// Authenticate fails with ErrUnauthorized when the token is invalid, the
// user no longer exists or the account is inactive.
func (s *AccessService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Authenticate")

	userID, err := s.jwt.ValidateToken(token)
	if err != nil {
		logger.DebugWithContext(ctx, "Token rejected").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrUnauthorized, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.WarnWithContext(ctx, "Token subject not found").
			String("target_id", userID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrUnauthorized, err)
	}

	if !user.IsActive {
		logger.WarnWithContext(ctx, "Token presented for inactive account").
			String("target_id", userID).
			Log()
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// RequireAdmin authenticates and then fails with ErrForbidden unless the user
// holds the admin role.
func (s *AccessService) RequireAdmin(ctx context.Context, token string) (*model.User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.CheckAdmin(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// CheckAdmin is the role half of RequireAdmin, for a user that has already
// been authenticated.
func (s *AccessService) CheckAdmin(ctx context.Context, user *model.User) error {
	if user == nil || !user.IsAdmin() {
		entry := logger.WarnWithContext(ctx, "Admin route denied")
		if user != nil {
			entry = entry.String("target_id", user.ID).String("role", user.Role)
		}
		entry.Log()
		return apperrors.ErrForbidden
	}
	return nil
}
