package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vibhive/internal/container"
	handlers "github.com/oksasatya/vibhive/internal/interface/http"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
)

// UserModule mounts /users.
// Public: register, login, refresh-token.
// Protected: everything else.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    AuthGuard
}

func NewUserModule(h *handlers.UserHandler, auth AuthGuard) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	users := rg.Group("/users")
	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/refresh-token", refreshLimiter, m.Handler.RefreshToken)

	auth := users.Group("", m.Auth...)
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/change-password", m.Handler.ChangePassword)
		auth.GET("/current-user", m.Handler.CurrentUser)
		auth.PATCH("/update-details", m.Handler.UpdateDetails)
		auth.PATCH("/update-avtar", m.Handler.UpdateAvatar)
		auth.PATCH("/update-cover-image", m.Handler.UpdateCoverImage)
		auth.GET("/c/:username", m.Handler.Profile)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/", m.Handler.MyProfile)
	}
}
