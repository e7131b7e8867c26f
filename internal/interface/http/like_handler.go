package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/response"
)

type LikeHandler struct {
	Svc LikeUseCase
}

func NewLikeHandler(svc LikeUseCase) *LikeHandler {
	return &LikeHandler{Svc: svc}
}

// Toggle handles POST /likes/like/:postId.
func (h *LikeHandler) Toggle(c *gin.Context) {
	postID, err := objectIDParam(c, "postId")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	liked, err := h.Svc.Toggle(c.Request.Context(), actor(c), postID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	msg := "Unliked successfully"
	if liked {
		msg = "Liked successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"isLiked": liked}, msg)
}
