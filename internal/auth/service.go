package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgauth "github.com/PollinateIQ/dineup-backend/pkg/auth"
	"github.com/PollinateIQ/dineup-backend/pkg/auth/session"
	"github.com/PollinateIQ/dineup-backend/pkg/config"
	"github.com/PollinateIQ/dineup-backend/pkg/db"
	"github.com/PollinateIQ/dineup-backend/pkg/db/models"
	"github.com/PollinateIQ/dineup-backend/pkg/enums"
	pkgerrors "github.com/PollinateIQ/dineup-backend/pkg/errors"
	"github.com/PollinateIQ/dineup-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, remoteIP string) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error)
	Register(ctx context.Context, req RegisterRequest, remoteIP string) (*UserSummary, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type restaurantLoader interface {
	FindByIdentifier(ctx context.Context, identifier string) (*models.Restaurant, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	RestaurantRepo restaurantLoader
	SessionManager sessionManager
	Limiter        rateLimiter
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	RateLimits     config.AuthRateLimitConfig
}

type service struct {
	users       userRepository
	restaurants restaurantLoader
	session     sessionManager
	limiter     rateLimiter
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	limits      config.AuthRateLimitConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	return &service{
		users:       params.UserRepo,
		restaurants: params.RestaurantRepo,
		session:     params.SessionManager,
		limiter:     params.Limiter,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		limits:      params.RateLimits,
	}, nil
}

// Login verifies credentials and issues an access/refresh pair. Attempts are
// rate limited per email and per client IP before any password work happens.
func (s *service) Login(ctx context.Context, req LoginRequest, remoteIP string) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if err := s.allow(ctx, "login:email:"+email, int64(s.limits.LoginEmailLimit), s.limits.LoginWindow); err != nil {
		return nil, err
	}
	if err := s.allow(ctx, "login:ip:"+remoteIP, int64(s.limits.LoginIPLimit), s.limits.LoginWindow); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		TokenPair: *pair,
		User:      summarize(user),
	}, nil
}

// Refresh rotates the refresh token and mints a fresh access token carrying
// the same identity claims. The old pair is invalidated.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, req.Access)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token pair")
	}

	newAccessID, refreshToken, err := s.session.Rotate(ctx, claims.ID, req.Refresh)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token pair")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:       claims.UserID,
		RestaurantID: claims.RestaurantID,
		Role:         claims.Role,
		JTI:          newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Register creates a customer account bound to the restaurant named by its
// public identifier. The role is always customer regardless of input.
func (s *service) Register(ctx context.Context, req RegisterRequest, remoteIP string) (*UserSummary, error) {
	email := normalizeEmail(req.Email)
	if err := s.allow(ctx, "register:email:"+email, int64(s.limits.RegisterEmailLimit), s.limits.RegisterWindow); err != nil {
		return nil, err
	}
	if err := s.allow(ctx, "register:ip:"+remoteIP, int64(s.limits.RegisterIPLimit), s.limits.RegisterWindow); err != nil {
		return nil, err
	}

	if req.Password != req.Password2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	restaurant, err := s.restaurants.FindByIdentifier(ctx, strings.TrimSpace(req.RestaurantIdentifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown restaurant")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	restaurantID := restaurant.ID
	user := &models.User{
		RestaurantID: &restaurantID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleCustomer,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	summary := summarize(created)
	return &summary, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) issuePair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:       user.ID,
		RestaurantID: user.RestaurantID,
		Role:         user.Role,
		JTI:          accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) allow(ctx context.Context, scope string, limit int64, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return nil
	}
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, limit, window)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later")
	}
	return nil
}

func summarize(user *models.User) UserSummary {
	return UserSummary{
		ID:           user.ID,
		RestaurantID: user.RestaurantID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
