package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	principalContextKey = "principal"
	tokenLifetime       = 7 * 24 * time.Hour
)

// Principal represents the authenticated caller extracted from a JWT.
type Principal struct {
	ID   kernel.UUID
	Role user.Role
}

// TokenIssuer signs and validates the bearer tokens this API uses.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &TokenIssuer{secret: []byte(secret), now: time.Now}, nil
}

type apiClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user.
func (t *TokenIssuer) Issue(id kernel.UUID, role user.Role) (string, error) {
	now := t.now()
	claims := apiClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// parse validates a raw token and extracts the caller's identity.
func (t *TokenIssuer) parse(tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &apiClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return Principal{}, err
	}

	claims, ok := token.Claims.(*apiClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, errors.New("invalid subject claim")
	}

	role, err := user.RoleFromString(claims.Role)
	if err != nil {
		return Principal{}, errors.New("invalid role claim")
	}

	return Principal{ID: id, Role: role}, nil
}

// Middleware authenticates requests with a Bearer JWT and stores the
// Principal on the echo context.
func (t *TokenIssuer) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing authorization header",
				})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid authorization header",
				})
			}

			principal, err := t.parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			ctx.Set(principalContextKey, principal)
			return next(ctx)
		}
	}
}

// principalFrom retrieves the authenticated caller set by the middleware.
func principalFrom(ctx echo.Context) (Principal, bool) {
	principal, ok := ctx.Get(principalContextKey).(Principal)
	return principal, ok
}
