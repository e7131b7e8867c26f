package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/pagination"
	"github.com/oksasatya/vibhive/pkg/response"
)

type FollowHandler struct {
	Svc FollowUseCase
}

func NewFollowHandler(svc FollowUseCase) *FollowHandler {
	return &FollowHandler{Svc: svc}
}

// Toggle handles POST /follows/follow/:userId.
func (h *FollowHandler) Toggle(c *gin.Context) {
	target, err := objectIDParam(c, "userId")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	res, err := h.Svc.Toggle(c.Request.Context(), actor(c), target)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	msg := "Un-followed successfully"
	if res.Following {
		msg = "Followed successfully"
	}
	response.Success(c, http.StatusOK, res, msg)
}

type listFunc func(c *gin.Context, username string, opts pagination.Options) (*application.FollowList, error)

func (h *FollowHandler) Followers(c *gin.Context) {
	h.list(c, func(c *gin.Context, username string, opts pagination.Options) (*application.FollowList, error) {
		return h.Svc.Followers(c.Request.Context(), username, middleware.Viewer(c), opts)
	}, "Followers list fetched successfully")
}

func (h *FollowHandler) Following(c *gin.Context) {
	h.list(c, func(c *gin.Context, username string, opts pagination.Options) (*application.FollowList, error) {
		return h.Svc.Following(c.Request.Context(), username, middleware.Viewer(c), opts)
	}, "Following list fetched successfully")
}

func (h *FollowHandler) list(c *gin.Context, fetch listFunc, msg string) {
	opts, err := pageOptions(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	list, err := fetch(c, c.Param("username"), opts)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, list, msg)
}
