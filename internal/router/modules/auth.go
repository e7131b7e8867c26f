package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vibhive/internal/container"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/helpers"
)

// AuthGuard is the middleware chain for authenticated routes: token check
// followed by per-IP and per-user limits.
type AuthGuard []gin.HandlerFunc

func NewAuthGuard(jwt *helpers.JWTManager, users middleware.UserLoader) AuthGuard {
	rdb := container.GetRedis()
	return AuthGuard{
		middleware.Auth(jwt, users),
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	}
}
