package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/transport/http/dto/response"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	identityKey = "identity"
	claimsKey   = "access_claims"
)

// Identity пользователь, от имени которого выполняется запрос
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

type TokenManager interface {
	VerifyAccess(accessToken string) (models.TokenClaims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// CookieConfig параметры cookie с токенами
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SetTokenCookies выставляет пару токенов в HttpOnly cookie
func SetTokenCookies(c echo.Context, pair *models.TokenPair, cfg CookieConfig) {
	c.SetCookie(tokenCookie(AccessCookie, pair.AccessToken, cfg.AccessTTL, cfg.Secure))
	c.SetCookie(tokenCookie(RefreshCookie, pair.RefreshToken, cfg.RefreshTTL, cfg.Secure))
}

func ClearTokenCookies(c echo.Context, cfg CookieConfig) {
	c.SetCookie(tokenCookie(AccessCookie, "", -1, cfg.Secure))
	c.SetCookie(tokenCookie(RefreshCookie, "", -1, cfg.Secure))
}

func tokenCookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	return cookie
}

// JWTCookieAuth определяет пользователя по access-токену из заголовка Authorization
// или cookie. Просроченный access обновляется по refresh-токену, новые cookie уходят
// в ответ. Если обновить не удалось, cookie очищаются и запрос продолжается анонимно.
func JWTCookieAuth(log *slog.Logger, tokens TokenManager, cfg CookieConfig) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,cookie:" + AccessCookie,
		ContextKey:  claimsKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.VerifyAccess(auth)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get(claimsKey).(models.TokenClaims); ok {
				setIdentity(c, claims)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			refreshFromCookie(c, log, tokens, cfg)
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// refreshFromCookie выпускает новую пару по refresh-cookie
func refreshFromCookie(c echo.Context, log *slog.Logger, tokens TokenManager, cfg CookieConfig) {
	cookie, err := c.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		return
	}

	pair, err := tokens.RefreshTokens(c.Request().Context(), cookie.Value)
	if err != nil {
		log.Debug("refresh from cookie failed", sl.Err(err))
		ClearTokenCookies(c, cfg)
		return
	}

	claims, err := tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		log.Error("fresh access token rejected", sl.Err(err))
		ClearTokenCookies(c, cfg)
		return
	}

	SetTokenCookies(c, pair, cfg)
	setIdentity(c, claims)
}

func setIdentity(c echo.Context, claims models.TokenClaims) {
	c.Set(identityKey, Identity{UserID: claims.UserID, Role: claims.Role})
}

// IdentityFrom возвращает пользователя запроса, если он аутентифицирован
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

// CanModerate сообщает, видит ли запрос служебные поля
func CanModerate(c echo.Context) bool {
	id, ok := IdentityFrom(c)
	return ok && id.Role.CanModerate()
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := IdentityFrom(c); !ok {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails(
				"authentication_required", "Authentication credentials were not provided",
			))
		}
		return next(c)
	}
}

func RequireModerator(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r.CanModerate() })(next)
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r == models.RoleAdmin })(next)
}

func requireRole(allowed func(models.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(func(c echo.Context) error {
			id, _ := IdentityFrom(c)
			if !allowed(id.Role) {
				return c.JSON(http.StatusForbidden, response.ErrForbidden)
			}
			return next(c)
		})
	}
}
