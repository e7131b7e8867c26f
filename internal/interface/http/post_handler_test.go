package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

func postRoutes(h *PostHandler) func(r gin.IRouter) {
	return func(r gin.IRouter) {
		r.POST("/posts/create-post", h.Create)
		r.GET("/posts/all-posts", h.All)
		r.GET("/posts/get/my", h.Mine)
		r.GET("/posts/get/u/:username", h.ByUsername)
		r.GET("/posts/get/:id", h.Get)
		r.PATCH("/posts/update-post-detail/:id", h.UpdateDetails)
		r.PATCH("/posts/update-post-image/:id", h.UpdateImages)
		r.DELETE("/posts/delete/:id", h.Delete)
	}
}

func TestPostHandler_AllPagination(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		status int
		opts   pagination.Options
	}{
		{"defaults", "", http.StatusOK, pagination.Options{Page: 1, Limit: 10, Labels: pagination.DefaultLabels}},
		{"page below one clamps", "?page=0&limit=5", http.StatusOK, pagination.Options{Page: 1, Limit: 5, Labels: pagination.DefaultLabels}},
		{"limit clamps", "?page=2&limit=500", http.StatusOK, pagination.Options{Page: 2, Limit: 100, Labels: pagination.DefaultLabels}},
		{"zero limit", "?limit=0", http.StatusBadRequest, pagination.Options{}},
		{"negative limit", "?limit=-3", http.StatusBadRequest, pagination.Options{}},
		{"non integer page", "?page=two", http.StatusBadRequest, pagination.Options{}},
		{"page offset out of range", "?page=4611686018427387904&limit=10", http.StatusBadRequest, pagination.Options{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockPosts)
			if tc.status == http.StatusOK {
				opts := tc.opts
				opts.Labels = pagination.PostLabels
				svc.On("All", mock.Anything, (*primitive.ObjectID)(nil), tc.opts).
					Return(pagination.NewPage([]entity.PostView{}, 0, opts), nil)
			}
			r := newEngine(nil, postRoutes(NewPostHandler(svc, nil, 0)))

			w, env := do(t, r, jsonRequest(http.MethodGet, "/posts/all-posts"+tc.query, nil))
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.status, env.StatusCode)
			if tc.status == http.StatusOK {
				assert.Equal(t, "Posts fetched successfully", env.Message)
				var data map[string]any
				require.NoError(t, json.Unmarshal(env.Data, &data))
				assert.Contains(t, data, "posts")
				assert.Contains(t, data, "totalPosts")
			} else {
				assert.False(t, env.Success)
				require.Len(t, env.Errors, 1)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPostHandler_CreateMultipart(t *testing.T) {
	me := &entity.User{ID: primitive.NewObjectID(), Username: "alice"}
	svc := new(MockPosts)
	svc.On("Create", mock.Anything, me.ID, mock.MatchedBy(func(in application.CreatePostInput) bool {
		return in.Content == "hello" &&
			assert.ObjectsAreEqual([]string{"go", "mongo", "db"}, application.NormalizeTags(in.Tags)) &&
			len(in.Images) == 2 &&
			in.Images[0].ContentType == "image/png"
	})).Return(&entity.PostView{ID: primitive.NewObjectID(), Content: "hello"}, nil)

	r := newEngine(me, postRoutes(NewPostHandler(svc, nil, 1<<20)))
	req := multipartRequest(t, http.MethodPost, "/posts/create-post",
		[][2]string{{"content", "hello"}, {"tags", "go, mongo"}, {"tags", "db"}},
		[]formFile{
			{field: "images", name: "a.png", contentType: "image/png", body: "png"},
			{field: "images", name: "b.jpg", contentType: "image/jpeg", body: "jpg"},
		})

	w, env := do(t, r, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Post created successfully", env.Message)
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}

func TestPostHandler_CreateRejectsNonImage(t *testing.T) {
	me := &entity.User{ID: primitive.NewObjectID()}
	svc := new(MockPosts)
	r := newEngine(me, postRoutes(NewPostHandler(svc, nil, 0)))
	req := multipartRequest(t, http.MethodPost, "/posts/create-post",
		[][2]string{{"content", "hello"}},
		[]formFile{{field: "images", name: "notes.txt", contentType: "text/plain", body: "x"}})

	w, env := do(t, r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "only image files are allowed", env.Message)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostHandler_UpdateDetails(t *testing.T) {
	me := &entity.User{ID: primitive.NewObjectID()}
	id := primitive.NewObjectID()

	t.Run("json with comma tags", func(t *testing.T) {
		svc := new(MockPosts)
		svc.On("UpdateDetails", mock.Anything, me.ID, id, mock.MatchedBy(func(in application.UpdatePostInput) bool {
			return in.Content == nil && assert.ObjectsAreEqual([]string{"a", "b"}, in.Tags)
		})).Return(&entity.PostView{ID: id}, nil)
		r := newEngine(me, postRoutes(NewPostHandler(svc, nil, 0)))

		w, env := do(t, r, jsonRequest(http.MethodPatch, "/posts/update-post-detail/"+id.Hex(), map[string]any{"tags": "a,b"}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Details updated successfully", env.Message)
		svc.AssertExpectations(t)
	})

	t.Run("forbidden for non owner", func(t *testing.T) {
		svc := new(MockPosts)
		svc.On("UpdateDetails", mock.Anything, me.ID, id, mock.Anything).
			Return(nil, apperror.Forbidden("You are not allowed to modify this post"))
		r := newEngine(me, postRoutes(NewPostHandler(svc, nil, 0)))

		w, env := do(t, r, jsonRequest(http.MethodPatch, "/posts/update-post-detail/"+id.Hex(), map[string]any{"content": "x"}))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "You are not allowed to modify this post", env.Message)
	})
}

func TestPostHandler_GetAndDelete(t *testing.T) {
	me := &entity.User{ID: primitive.NewObjectID()}
	id := primitive.NewObjectID()
	svc := new(MockPosts)
	svc.On("Get", mock.Anything, id, &me.ID).Return(&entity.PostView{ID: id, IsLiked: true}, nil)
	svc.On("Delete", mock.Anything, me.ID, id).Return(nil)
	r := newEngine(me, postRoutes(NewPostHandler(svc, nil, 0)))

	w, env := do(t, r, jsonRequest(http.MethodGet, "/posts/get/"+id.Hex(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post fetched successfully", env.Message)

	w, env = do(t, r, jsonRequest(http.MethodGet, "/posts/get/not-an-id", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", env.Errors[0].Field)

	w, env = do(t, r, jsonRequest(http.MethodDelete, "/posts/delete/"+id.Hex(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Post deleted successfully", env.Message)
	assert.JSONEq(t, `{}`, string(env.Data))
	svc.AssertExpectations(t)
}

func TestPostHandler_ByUsernameNotFound(t *testing.T) {
	svc := new(MockPosts)
	svc.On("ByUsername", mock.Anything, "ghost", (*primitive.ObjectID)(nil), mock.Anything).
		Return(nil, apperror.NotFound("user"))
	r := newEngine(nil, postRoutes(NewPostHandler(svc, nil, 0)))

	w, env := do(t, r, jsonRequest(http.MethodGet, "/posts/get/u/ghost", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user not found", env.Message)
}
