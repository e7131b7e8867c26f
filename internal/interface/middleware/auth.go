package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/helpers"
)

const (
	CtxUserIDKey      = "userID"
	CtxCurrentUserKey = "currentUser"
)

// UserLoader resolves the user a token belongs to.
type UserLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
}

// Auth validates the access token from the accessToken cookie or an
// Authorization: Bearer header and loads its user. It sets userID (hex) and
// currentUser in the Gin context on success.
func Auth(jwt *helpers.JWTManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			Fail(c, apperror.Unauthorized("unauthorized request"))
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			Fail(c, apperror.Unauthorized("invalid access token"))
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			Fail(c, apperror.Unauthorized("invalid access token"))
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				err = apperror.Unauthorized("invalid access token")
			}
			Fail(c, err)
			return
		}

		c.Set(CtxUserIDKey, u.ID.Hex())
		c.Set(CtxCurrentUserKey, u)
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if v, err := c.Cookie(helpers.AccessTokenCookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// CurrentUser returns the user set by Auth, or nil on unauthenticated routes.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxCurrentUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

// Viewer is the authenticated user's id, or nil when anonymous.
func Viewer(c *gin.Context) *primitive.ObjectID {
	if u := CurrentUser(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}
