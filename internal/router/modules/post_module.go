package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/vibhive/internal/interface/http"
)

type PostModule struct {
	Handler *handlers.PostHandler
	Auth    AuthGuard
}

func NewPostModule(h *handlers.PostHandler, auth AuthGuard) *PostModule {
	return &PostModule{Handler: h, Auth: auth}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	posts := rg.Group("/posts", m.Auth...)
	posts.POST("/create-post", m.Handler.Create)
	posts.DELETE("/delete/:id", m.Handler.Delete)
	posts.GET("/all-posts", m.Handler.All)
	posts.PATCH("/update-post-detail/:id", m.Handler.UpdateDetails)
	posts.PATCH("/update-post-image/:id", m.Handler.UpdateImages)
	posts.GET("/get/u/:username", m.Handler.ByUsername)
	posts.GET("/get/my", m.Handler.Mine)
	posts.GET("/get/:id", m.Handler.Get)
}
