package modules

import (
	"expvar"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vibhive/internal/container"
	handlers "github.com/oksasatya/vibhive/internal/interface/http"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
)

// DebugModule exposes expvar counters and pprof. Private-network callers
// skip the rate limit; pprof is private-network only.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	pprof.RouteRegister(rg.Group("/debug", middleware.PrivateOnly()), "pprof")
}

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Handler.Check)
}
