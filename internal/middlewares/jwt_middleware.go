package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskhub-server/pkg/errors"
)

const userIDKey = "user_id"

// JWTConfig holds the configuration for the JWT middleware.
type JWTConfig struct {
	Secret string
	Logger *zap.Logger
}

// JWTMiddleware extracts the bearer token from the Authorization header,
// verifies the HS256 signature, and stores the sub claim (user id) in the
// echo context.
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "missing authorization header",
					"code":  errors.ErrUnauthenticated,
				})
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid authorization header format, expected: Bearer <token>",
					"code":  errors.ErrUnauthenticated,
				})
			}

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(config.Secret), nil
			})
			if err != nil {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", c.Request().URL.Path))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid or expired token",
					"code":  errors.ErrUnauthenticated,
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid token",
					"code":  errors.ErrUnauthenticated,
				})
			}

			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "sub claim not found in token",
					"code":  errors.ErrUnauthenticated,
				})
			}

			c.Set(userIDKey, sub)
			return next(c)
		}
	}
}

// GetUserIDFromContext extracts the user id stored by JWTMiddleware.
func GetUserIDFromContext(c echo.Context) (string, error) {
	uid := c.Get(userIDKey)
	if uid == nil {
		return "", errors.Unauthenticated("user id not found in context")
	}
	userID, ok := uid.(string)
	if !ok {
		return "", errors.Unauthenticated("user id has invalid type")
	}
	return userID, nil
}
