package router

import "github.com/gin-gonic/gin"

// Module is a feature (users, posts, likes, follows) that mounts its routes
// on the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
