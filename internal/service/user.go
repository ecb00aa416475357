package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/Payphone-Digital/accounts/internal/dto"
	apperrors "github.com/Payphone-Digital/accounts/internal/errors"
	"github.com/Payphone-Digital/accounts/internal/model"
	"github.com/Payphone-Digital/accounts/internal/repository"
	ctxutil "github.com/Payphone-Digital/accounts/pkg/context"
	"github.com/Payphone-Digital/accounts/pkg/logger"
	"github.com/Payphone-Digital/accounts/pkg/password"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	repoUser   *repository.UserRepository
	jwtService *JWTService
	now        func() time.Time
}

func NewUserService(repo *repository.UserRepository, jwtService *JWTService) *UserService {
	return &UserService{
		repoUser:   repo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// NormalizeEmail trims and lower-cases an address before it is stored or
// compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active account with role user and returns it with a
// fresh token. Checks run in order: required fields, duplicate email,
// password length.
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	required := []struct{ name, value string }{
		{"email", req.Email},
		{"password", req.Password},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return nil, apperrors.Validation(field.name + " is required")
		}
	}

	email := NormalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "User registration attempt").
		String("email", email).
		Log()

	taken, err := s.repoUser.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if taken {
		logger.WarnWithContext(ctx, "Registration rejected, email exists").
			String("email", email).
			Log()
		return nil, apperrors.ErrEmailExists
	}

	if utf8.RuneCountInString(req.Password) < constants.MinPasswordLength {
		return nil, apperrors.ErrPasswordTooShort
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         constants.RoleUser,
		IsActive:     true,
	}

	// A concurrent registration can still win between EmailTaken and Create;
	// the unique index rejects the loser and it surfaces as an internal error.
	if err := s.repoUser.Create(ctx, user); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate JWT token").
			String("target_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "New user registered").
		String("email", user.Email).
		String("target_id", user.ID).
		Log()

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Token: token}, nil
}

// Login checks credentials, records last_login and issues a token. A failed
// attempt never writes to the user row.
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")

	if req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation(constants.MsgCredentialsRequired)
	}

	email := NormalizeEmail(req.Email)

	user, err := s.repoUser.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.LogAuth("", "login", false, zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !password.Check(user.PasswordHash, req.Password) {
		logger.LogAuth(user.ID, "login", false, zap.String("email", email), zap.String("reason", "password mismatch"))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.LogAuth(user.ID, "login", false, zap.String("email", email), zap.String("reason", "inactive"))
		return nil, apperrors.ErrAccountInactive
	}

	loginAt := s.now().UTC()
	if err := s.repoUser.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	user.LastLogin = &loginAt

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate JWT token").
			String("target_id", user.ID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.LogAuth(user.ID, "login", true, zap.String("email", email))

	return &dto.AuthResponse{User: dto.ToUserResponse(user), Token: token}, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return s.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of req to the caller's own record.
// Names are trimmed and may not end up empty; a new email must not belong to
// anyone else.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateProfile")

	user, err := s.repoUser.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return nil, apperrors.Validation("firstName must not be empty")
		}
		user.FirstName = name
	}

	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return nil, apperrors.Validation("lastName must not be empty")
		}
		user.LastName = name
	}

	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email == "" {
			return nil, apperrors.Validation("email must not be empty")
		}

		taken, err := s.repoUser.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if taken {
			return nil, apperrors.ErrEmailInUse
		}
		user.Email = email
	}

	if err := s.repoUser.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Profile updated").
		String("target_id", user.ID).
		Log()

	response := dto.ToUserResponse(user)
	return &response, nil
}

// GetAll returns one page of users plus pagination metadata.
func (s *UserService) GetAll(ctx context.Context, params constants.PaginationParams) ([]dto.UserResponse, constants.PaginationMeta, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetAll")

	users, total, err := s.repoUser.List(ctx, params.Limit, params.Offset, params.Search)
	if err != nil {
		return nil, constants.PaginationMeta{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return dto.ToUserResponses(users), constants.NewPaginationMeta(params.Page, params.Limit, total), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetByID")

	user, err := s.repoUser.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := dto.ToUserResponse(user)
	return &response, nil
}

// DeleteUser hard-deletes a user. Deleting an admin is refused while at most
// one active admin exists. The lookup, count and delete share a transaction.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteUser")

	err := s.repoUser.WithTransaction(ctx, func(tx *repository.UserRepository) error {
		user, err := tx.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		if user.IsAdmin() {
			admins, err := tx.CountActiveAdmins(ctx)
			if err != nil {
				return apperrors.WrapError(apperrors.ErrInternal, err)
			}
			if admins <= 1 {
				logger.WarnWithContext(ctx, "Refusing to delete last admin").
					String("target_id", id).
					Log()
				return apperrors.ErrLastAdmin
			}
		}

		if err := tx.Delete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.WrapError(apperrors.ErrInternal, err)
		}

		logger.InfoWithContext(ctx, "User deleted").
			String("target_id", id).
			String("email", user.Email).
			Log()
		return nil
	})

	return err
}
