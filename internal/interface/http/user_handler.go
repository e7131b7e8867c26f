package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/helpers"
	"github.com/oksasatya/vibhive/pkg/response"
)

type UserHandler struct {
	Svc     UserUseCase
	Logger  *logrus.Logger
	Cookies *helpers.Manager
	uploads uploadLimits
}

func NewUserHandler(svc UserUseCase, logger *logrus.Logger, cookieDomain string, cookieSecure bool, maxUploadBytes int64) *UserHandler {
	return &UserHandler{
		Svc:     svc,
		Logger:  logger,
		Cookies: helpers.NewCookie(cookieDomain, cookieSecure),
		uploads: uploadLimits{MaxBytes: maxUploadBytes},
	}
}

type registerRequest struct {
	FullName string `form:"fullName"`
	Username string `form:"username" binding:"omitempty,handle"`
	Email    string `form:"email" binding:"omitempty,email"`
	Password string `form:"password" binding:"omitempty,pwd"`
	Bio      string `form:"bio"`
	DOB      string `form:"dob"`
	Location string `form:"location"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,pwd"`
}

type updateDetailsRequest struct {
	Username *string `json:"username" form:"username" binding:"omitempty,handle"`
	Bio      *string `json:"bio" form:"bio" binding:"omitempty,max=500"`
}

// Register handles POST /users/register (multipart, avatar in "avtar").
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.Fail(c, bindError(err))
		return
	}
	in := application.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Location: req.Location,
	}
	if req.DOB != "" {
		dob, err := time.Parse(time.DateOnly, req.DOB)
		if err != nil {
			middleware.Fail(c, apperror.ValidationFailed("dob", "dob must be YYYY-MM-DD"))
			return
		}
		in.DOB = &dob
	}
	avatar, err := h.uploads.single(c, "avtar", "avatar")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	in.Avatar = avatar

	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, bindError(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), application.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, res.Tokens.AccessToken, res.Tokens.AccessTokenExpiry, res.Tokens.RefreshToken, res.Tokens.RefreshTokenExpiry)
	helpers.LogInfo(h.Logger, "user logged in", logrus.Fields{"user_id": res.User.ID.Hex()})
	response.Success(c, http.StatusOK, gin.H{
		"user":         res.User,
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	}, "user logged in successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), actor(c)); err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, response.Empty(), "user logged out successfully")
}

// RefreshToken reads the refresh token from its cookie or the JSON body.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshTokenCookie)
	if token == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "access token granted")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, bindError(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), actor(c), req.OldPassword, req.NewPassword); err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, response.Empty(), "password changed successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.CurrentUser(c), "user fetched successfully")
}

// UpdateDetails accepts JSON or a multipart form with an optional avatar.
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&req); err != nil {
			middleware.Fail(c, bindError(err))
			return
		}
	}
	avatar, err := h.uploads.single(c, "avtar", "avatar")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	u, err := h.Svc.UpdateDetails(c.Request.Context(), actor(c), application.UpdateDetailsInput{
		Username: req.Username,
		Bio:      req.Bio,
		Avatar:   avatar,
	})
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Profile updated successfully!")
}

func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	up, err := h.uploads.single(c, "avtar", "avatar")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	u, err := h.Svc.UpdateAvatar(c.Request.Context(), actor(c), up)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avtar image updated successfully")
}

func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	up, err := h.uploads.single(c, "coverImage")
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	u, err := h.Svc.UpdateCoverImage(c.Request.Context(), actor(c), up)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "cover image updated successfully")
}

// Profile handles GET /users/c/:username.
func (h *UserHandler) Profile(c *gin.Context) {
	p, err := h.Svc.Profile(c.Request.Context(), c.Param("username"), middleware.Viewer(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "User profile fetched successfully")
}

func (h *UserHandler) MyProfile(c *gin.Context) {
	p, err := h.Svc.MyProfile(c.Request.Context(), actor(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "User profile fetched successfully")
}

// Search handles GET /users/search?q=&size=.
func (h *UserHandler) Search(c *gin.Context) {
	size := 0
	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.Fail(c, apperror.ValidationFailed("size", "size must be an integer"))
			return
		}
		size = n
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "users fetched successfully")
}
