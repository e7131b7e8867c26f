package repository

import (
	"context"

	"github.com/oksasatya/vibhive/internal/domain/entity"
)

// UserSearch is the full-text user index. It is a secondary store: the
// document database stays authoritative.
type UserSearch interface {
	Index(ctx context.Context, u *entity.User) error
	Search(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}
