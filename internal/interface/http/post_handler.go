package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/response"
)

const postImagesField = "images"

type PostHandler struct {
	Svc     PostUseCase
	Logger  *logrus.Logger
	uploads uploadLimits
}

func NewPostHandler(svc PostUseCase, logger *logrus.Logger, maxUploadBytes int64) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger, uploads: uploadLimits{MaxBytes: maxUploadBytes}}
}

// tagList accepts either a JSON array or a comma-separated string.
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*t = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = strings.Split(s, ",")
	return nil
}

type updatePostRequest struct {
	Content *string `json:"content"`
	Tags    tagList `json:"tags"`
}

// Create handles POST /posts/create-post (multipart: content, tags, images).
func (h *PostHandler) Create(c *gin.Context) {
	images, err := h.uploads.many(c, postImagesField)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	tags, _ := formTags(c)
	view, err := h.Svc.Create(c.Request.Context(), actor(c), application.CreatePostInput{
		Content: c.PostForm("content"),
		Tags:    tags,
		Images:  images,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "Post created successfully")
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), actor(c), id); err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, response.Empty(), "Post deleted successfully")
}

func (h *PostHandler) All(c *gin.Context) {
	opts, err := pageOptions(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	page, err := h.Svc.All(c.Request.Context(), middleware.Viewer(c), opts)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "Posts fetched successfully")
}

// UpdateDetails accepts JSON or form bodies. An absent tags field leaves
// the tags untouched.
func (h *PostHandler) UpdateDetails(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	var in application.UpdatePostInput
	if c.ContentType() == gin.MIMEJSON {
		var req updatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.Fail(c, bindError(err))
			return
		}
		in.Content = req.Content
		if req.Tags != nil {
			in.Tags = []string(req.Tags)
		}
	} else {
		if content, ok := c.GetPostForm("content"); ok {
			in.Content = &content
		}
		if tags, ok := formTags(c); ok {
			in.Tags = tags
		}
	}

	view, err := h.Svc.UpdateDetails(c.Request.Context(), actor(c), id, in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "Details updated successfully")
}

func (h *PostHandler) UpdateImages(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	images, err := h.uploads.many(c, postImagesField)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	view, err := h.Svc.UpdateImages(c.Request.Context(), actor(c), id, images)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "Images updated successfully")
}

func (h *PostHandler) ByUsername(c *gin.Context) {
	opts, err := pageOptions(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		middleware.Fail(c, apperror.ValidationFailed("username", "username is required"))
		return
	}
	page, err := h.Svc.ByUsername(c.Request.Context(), username, middleware.Viewer(c), opts)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "User's posts fetched successfully")
}

func (h *PostHandler) Mine(c *gin.Context) {
	opts, err := pageOptions(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	page, err := h.Svc.Mine(c.Request.Context(), actor(c), opts)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "My posts fetched successfully")
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := objectIDParam(c, "id")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	view, err := h.Svc.Get(c.Request.Context(), id, middleware.Viewer(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "Post fetched successfully")
}
