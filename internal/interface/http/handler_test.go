package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/helpers"
	"github.com/oksasatya/vibhive/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// newEngine wires handlers behind the error translator. When user is not
// nil every request is authenticated as that user.
func newEngine(user *entity.User, routes func(r gin.IRouter)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorTranslator(helpers.NewNopLogger(), true))
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CtxUserIDKey, user.ID.Hex())
			c.Set(middleware.CtxCurrentUserKey, user)
			c.Next()
		})
	}
	routes(r)
	return r
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func do(t *testing.T, r http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

type formFile struct {
	field       string
	name        string
	contentType string
	body        string
}

// multipartRequest builds a multipart body. Fields are sent in order so
// repeated keys are preserved.
func multipartRequest(t *testing.T, method, target string, fields [][2]string, files []formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
