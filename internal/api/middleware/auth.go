package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by Auth and OptionalAuth.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// Auth validates the bearer JWT and injects the claims into the request
// context. Failures are specific: missing header, malformed/tampered token,
// and expired token each produce their own 401 message.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims, err := parseClaims(token, jwtSecret)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth injects claims when a valid bearer token is present and
// otherwise lets the request continue unauthenticated. Used by endpoints that
// behave differently for logged-in callers but do not require identity.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if claims, err := parseClaims(token, jwtSecret); err == nil {
					setClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func parseClaims(token, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func setClaims(c echo.Context, claims jwt.MapClaims) {
	c.Set(CtxUserID, claims["sub"])
	c.Set(CtxUsername, claims["username"])
	c.Set(CtxEmail, claims["email"])
	c.Set(CtxRole, claims["role"])
}
