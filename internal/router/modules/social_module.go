package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vibhive/internal/interface/http"
)

type LikeModule struct {
	Handler *handlers.LikeHandler
	Auth    AuthGuard
}

func NewLikeModule(h *handlers.LikeHandler, auth AuthGuard) *LikeModule {
	return &LikeModule{Handler: h, Auth: auth}
}

func (m *LikeModule) Register(rg *gin.RouterGroup) {
	rg.Group("/likes", m.Auth...).POST("/like/:postId", m.Handler.Toggle)
}

type FollowModule struct {
	Handler *handlers.FollowHandler
	Auth    AuthGuard
}

func NewFollowModule(h *handlers.FollowHandler, auth AuthGuard) *FollowModule {
	return &FollowModule{Handler: h, Auth: auth}
}

func (m *FollowModule) Register(rg *gin.RouterGroup) {
	follows := rg.Group("/follows", m.Auth...)
	follows.POST("/follow/:userId", m.Handler.Toggle)
	follows.GET("/followers-list/:username", m.Handler.Followers)
	follows.GET("/following-list/:username", m.Handler.Following)
}
