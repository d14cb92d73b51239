package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"vehiql/internal/domain/entity"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
	"vehiql/pkg/response"
)

const (
	ContextKeyUID  = "uid"
	ContextKeyUser = "user"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// UserEnsurer mirrors a verified identity into the local user store.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, uid string) (*entity.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserEnsurer
}

func NewAuthMiddleware(verifier TokenVerifier, users UserEnsurer) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
	}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		ctx := c.Request().Context()
		uid, err := m.verifier.VerifyToken(ctx, token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		user, err := m.users.EnsureUser(ctx, uid)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(ContextKeyUID, uid)
		c.Set(ContextKeyUser, user)
		return next(c)
	}
}

// OptionalAuth resolves the caller when a valid token is present and
// otherwise continues anonymously.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		uid, err := m.verifier.VerifyToken(ctx, token)
		if err != nil {
			logger.Debug("ignoring invalid token: %v", err)
			return next(c)
		}

		user, err := m.users.EnsureUser(ctx, uid)
		if err != nil {
			logger.Warn("could not resolve user %s, continuing anonymously: %v", uid, err)
			return next(c)
		}

		c.Set(ContextKeyUID, uid)
		c.Set(ContextKeyUser, user)
		return next(c)
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(ContextKeyUser).(*entity.User)
	return user
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
