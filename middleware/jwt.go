package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionTTLHours is how long an issued session token stays valid.
const SessionTTLHours = 24

// Claims extends jwt.RegisteredClaims with the signed-in official's identity.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWT returns an Echo middleware that validates the Authorization header
// token using the provided signing key. Expired or otherwise invalid tokens
// are rejected before any mutation runs.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			claims := &Claims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				case errors.Is(err, jwt.ErrSignatureInvalid):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token signature")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
				}
			}
			if !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("email", claims.Email)
			c.Set("name", claims.Name)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
