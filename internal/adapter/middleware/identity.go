package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	RoleAdmin    = "admin"
	RoleApprover = "approver"
	RoleOperator = "operator"

	actorKey = "actor"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Actor is the authenticated caller. ID is recorded as approved_by, rejected_by or recorded_by.
type Actor struct {
	ID   string
	Role string
}

// ParseToken validates an HS256 token and extracts the actor from its claims.
// The actor id comes from "sub", falling back to "user_id".
func ParseToken(secret []byte, raw string) (Actor, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Actor{}, ErrExpiredToken
		}
		return Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Actor{}, ErrInvalidToken
	}
	id, _ := claims.GetSubject()
	if id == "" {
		id, _ = claims["user_id"].(string)
	}
	if strings.TrimSpace(id) == "" {
		return Actor{}, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return Actor{ID: id, Role: role}, nil
}

// Identity authenticates every request except GET /health and stores the Actor on the echo context.
func Identity(secret []byte, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/health" {
				return next(c)
			}

			raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": ErrMissingToken.Error(), "code": "unauthorized"})
			}

			actor, err := ParseToken(secret, strings.TrimSpace(raw))
			if err != nil {
				log.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Debug("rejected token")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error(), "code": "unauthorized"})
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) (Actor, bool) {
	a, ok := c.Get(actorKey).(Actor)
	return a, ok
}

// RequireRole admits callers holding one of roles. Admins are always admitted.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated", "code": "unauthorized"})
			}
			if a.Role != RoleAdmin && !slices.Contains(roles, a.Role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions", "code": "forbidden"})
			}
			return next(c)
		}
	}
}
