package middleware

import (
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"pocketlib/config"
	"pocketlib/internal/domain/entity"
	domainerrors "pocketlib/internal/domain/errors"
	"pocketlib/internal/domain/service"
	"pocketlib/internal/errors"
)

const keyPrincipal = "principal"

// AuthMiddleware resolves the caller principal from the bearer
// credential. The checks run in a fixed order: header present, token
// well-formed, session known, application scope matching.
type AuthMiddleware struct {
	sessions service.SessionService
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions service.SessionService, cfg *config.Config, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cfg: cfg, logger: logger}
}

// Authenticate requires a valid credential and rejects anonymous calls.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrAuthorizationHeaderMissing
		}

		principal, err := m.resolve(c, authHeader)
		if err != nil {
			return err
		}

		c.Set(keyPrincipal, principal)

		return next(c)
	}
}

// AuthenticateOptional resolves the principal when a credential is
// present and passes anonymous callers through. A credential that is
// present but invalid still fails the request.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		principal, err := m.resolve(c, authHeader)
		if err != nil {
			return err
		}

		c.Set(keyPrincipal, principal)

		return next(c)
	}
}

func (m *AuthMiddleware) resolve(c echo.Context, authHeader string) (*entity.Principal, error) {
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	// The access token is a JWT issued by the session backend. A token
	// that does not verify locally cannot belong to any session.
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(m.cfg.SecretKey.Access), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidSession
	}

	session, err := m.sessions.Validate(c.Request().Context(), tokenString)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return nil, domainerrors.ErrInvalidSession
		}

		m.logger.Error("session validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrUpstream
	}

	if m.cfg.TableStore.AppID != "" && session.AppID != m.cfg.TableStore.AppID {
		return nil, domainerrors.ErrWrongApplicationScope
	}

	role := entity.RoleUser
	if m.cfg.IsAdmin(session.UserID) {
		role = entity.RoleAdmin
	}

	return &entity.Principal{
		Role:   role,
		UserID: session.UserID,
		AppID:  session.AppID,
	}, nil
}

// GetPrincipal returns the principal resolved by the auth middleware,
// or nil for anonymous requests.
func GetPrincipal(c echo.Context) *entity.Principal {
	if principal, ok := c.Get(keyPrincipal).(*entity.Principal); ok {
		return principal
	}

	return nil
}
