package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/internal/interface/middleware"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
	"github.com/oksasatya/vibhive/pkg/validation"
)

// pageOptions reads page and limit from the query string. Missing values
// take the defaults; anything that is not an integer is rejected.
func pageOptions(c *gin.Context) (pagination.Options, error) {
	opts := pagination.Options{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
	for _, q := range []struct {
		name string
		dst  *int64
	}{{"page", &opts.Page}, {"limit", &opts.Limit}} {
		raw, ok := c.GetQuery(q.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return opts, apperror.ValidationFailed(q.name, q.name+" must be an integer")
		}
		*q.dst = n
	}
	return opts.Normalize()
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, apperror.ValidationFailed(name, "invalid "+name)
	}
	return id, nil
}

func bindError(err error) error {
	return apperror.InvalidPayload(validation.ToDetails(err))
}

// actor is the authenticated caller. Routes using it sit behind Auth.
func actor(c *gin.Context) primitive.ObjectID {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return primitive.NilObjectID
}

// uploadLimits validates files before they reach the image store.
type uploadLimits struct {
	MaxBytes int64
}

func (l uploadLimits) toUpload(fh *multipart.FileHeader) (repo.Upload, error) {
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		return repo.Upload{}, apperror.ValidationFailed(fh.Filename, "only image files are allowed")
	}
	if l.MaxBytes > 0 && fh.Size > l.MaxBytes {
		return repo.Upload{}, apperror.ValidationFailed(fh.Filename, "file is too large")
	}
	return repo.Upload{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}, nil
}

// single returns the first file under any of fields, or nil when none was
// sent.
func (l uploadLimits) single(c *gin.Context, fields ...string) (*repo.Upload, error) {
	for _, f := range fields {
		fh, err := c.FormFile(f)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			return nil, bindError(err)
		}
		up, err := l.toUpload(fh)
		if err != nil {
			return nil, err
		}
		return &up, nil
	}
	return nil, nil
}

func (l uploadLimits) many(c *gin.Context, field string) ([]repo.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, bindError(err)
	}
	var out []repo.Upload
	for _, key := range []string{field, field + "[]"} {
		for _, fh := range form.File[key] {
			up, err := l.toUpload(fh)
			if err != nil {
				return nil, err
			}
			out = append(out, up)
		}
	}
	return out, nil
}

// formTags accepts repeated tags fields, indexed tags[0]..tags[n] fields and
// a single comma-separated value. The second result is false when no tags
// field was sent at all.
func formTags(c *gin.Context) ([]string, bool) {
	_ = c.Request.ParseMultipartForm(32 << 20)
	values := c.Request.PostForm
	if values == nil {
		return nil, false
	}

	var tags []string
	present := false
	if vs, ok := values["tags"]; ok {
		present = true
		for _, v := range vs {
			tags = append(tags, strings.Split(v, ",")...)
		}
	}
	if vs, ok := values["tags[]"]; ok {
		present = true
		tags = append(tags, vs...)
	}

	var indexed []string
	for k := range values {
		if strings.HasPrefix(k, "tags[") && strings.HasSuffix(k, "]") && k != "tags[]" {
			indexed = append(indexed, k)
		}
	}
	sort.Slice(indexed, func(i, j int) bool { return tagIndex(indexed[i]) < tagIndex(indexed[j]) })
	for _, k := range indexed {
		present = true
		tags = append(tags, values[k]...)
	}
	if present && tags == nil {
		tags = []string{}
	}
	return tags, present
}

func tagIndex(key string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(key, "tags["), "]"))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}
