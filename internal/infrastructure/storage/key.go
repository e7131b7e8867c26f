package storage

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// objectKey names a new object under folder, keeping the upload's extension.
func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}
