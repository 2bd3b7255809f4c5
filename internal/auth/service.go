package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumina-accesorios/lumina-backend/internal/users"
	pkgAuth "github.com/lumina-accesorios/lumina-backend/pkg/auth"
	"github.com/lumina-accesorios/lumina-backend/pkg/auth/session"
	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/lumina-accesorios/lumina-backend/pkg/db/models"
	pkgerrors "github.com/lumina-accesorios/lumina-backend/pkg/errors"
	"github.com/lumina-accesorios/lumina-backend/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type loginLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type service struct {
	users    userRepository
	session  sessionManager
	limiter  loginLimiter
	jwtCfg   config.JWTConfig
	limitCfg config.AuthRateLimitConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	Limiter        loginLimiter
	JWTConfig      config.JWTConfig
	RateLimit      config.AuthRateLimitConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Limiter == nil {
		return nil, fmt.Errorf("login limiter is required")
	}
	return &service{
		users:    params.UserRepo,
		session:  params.SessionManager,
		limiter:  params.Limiter,
		jwtCfg:   params.JWTConfig,
		limitCfg: params.RateLimit,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, clientIP string) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.checkLoginBudget(ctx, email, clientIP); err != nil {
		return nil, err
	}

	user, err := s.authenticate(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	accessID := session.NewAccessID()
	tokenPayload := pkgAuth.AccessTokenPayload{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		JTI:     accessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now(), tokenPayload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	tokenPayload := pkgAuth.AccessTokenPayload{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
		JTI:     newAccessID,
	}
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, time.Now(), tokenPayload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

// Logout revokes the server-side session even when the token already expired,
// so a stale tab can still sign out cleanly.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	if err := s.session.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) checkLoginBudget(ctx context.Context, email, clientIP string) error {
	if email != "" && s.limitCfg.LoginEmailLimit > 0 {
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:email:"+email, int64(s.limitCfg.LoginEmailLimit), s.limitCfg.LoginWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
		}
	}
	if clientIP != "" && s.limitCfg.LoginIPLimit > 0 {
		allowed, _, err := s.limiter.FixedWindowAllow(ctx, "login:ip:"+clientIP, int64(s.limitCfg.LoginIPLimit), s.limitCfg.LoginWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
		}
	}
	return nil
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
