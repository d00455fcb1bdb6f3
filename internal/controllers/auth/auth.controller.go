package authController

import (
	"context"
	"errors"
	"freshfold/config"
	"freshfold/internal/database"
	. "freshfold/internal/models"
	"freshfold/internal/repositories"
	"freshfold/internal/services"
	"strings"
	"time"

	logger "github.com/Bparsons0904/goLogger"

	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
)

var (
	ErrValidation         = errors.New("validation error")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthController struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	db           database.DB
	Config       config.Config
	log          logger.Logger
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest, role Role) (*User, error)
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, claims *services.TokenClaims) error
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:     repos.User,
		tokenService: services.Token,
		db:           db,
		Config:       config,
		log:          logger.New("authController"),
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
	role Role,
) (*User, error) {
	log := c.log.Function("Register")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, log.ErrorWithType(ErrValidation, "valid email is required")
	}
	if len(request.Password) < MinPasswordLength {
		return nil, log.ErrorWithType(
			ErrValidation,
			"password too short",
			"min", MinPasswordLength,
		)
	}
	if strings.TrimSpace(request.FullName) == "" {
		return nil, log.ErrorWithType(ErrValidation, "fullName is required")
	}

	if _, err := c.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, log.ErrorWithType(ErrEmailTaken, "email already registered", "email", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check existing email", err, "email", email)
	}

	hash, err := c.tokenService.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		FullName:     strings.TrimSpace(request.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(request.Phone),
		PasswordHash: hash,
		Role:         role,
	}

	if _, err := c.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info("User registered", "userID", user.ID, "role", role)

	return user, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*LoginResponse, error) {
	log := c.log.Function("Login")

	email := strings.ToLower(strings.TrimSpace(request.Email))
	if email == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "email and password are required")
	}

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a wrong password so the response does not leak
			// which accounts exist
			return nil, log.ErrorWithType(ErrInvalidCredentials, "unknown email")
		}
		return nil, err
	}

	if !c.tokenService.CheckPassword(request.Password, user.PasswordHash) {
		return nil, log.ErrorWithType(ErrInvalidCredentials, "wrong password", "userID", user.ID)
	}

	token, err := c.tokenService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	log.Info("User logged in", "userID", user.ID, "role", user.Role)

	return &LoginResponse{
		Token: token,
		User:  user.ToProfile(),
	}, nil
}

func (c *AuthController) Logout(ctx context.Context, claims *services.TokenClaims) error {
	return c.tokenService.RevokeToken(ctx, claims)
}
