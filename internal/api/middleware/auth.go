package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/donatehub/platform-api/internal/core/domain"
	"github.com/donatehub/platform-api/internal/core/ports"
)

// Auth validates the bearer token and resolves the subject's current user
// record. The role used downstream comes from that fresh lookup, not from
// the token claim. Expired tokens are reported distinctly from malformed or
// forged ones so clients can prompt a re-login.
func Auth(jwtSecret string, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return domain.ErrTokenExpired
				}
				return domain.ErrTokenInvalid
			}
			if !tkn.Valid {
				return domain.ErrTokenInvalid
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return domain.ErrTokenInvalid
			}

			user, err := users.FindByID(c.Request().Context(), sub)
			if err != nil {
				// The account behind a syntactically valid token is gone.
				return domain.ErrTokenInvalid
			}

			c.Set("user_id", user.ID)
			c.Set("role", string(user.Role))
			c.Set("user", user)

			return next(c)
		}
	}
}
