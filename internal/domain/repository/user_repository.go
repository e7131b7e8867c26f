package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
)

// UserPatch lists the user fields an update may set. Nil fields are left
// unchanged.
type UserPatch struct {
	Username   *string
	Bio        *string
	Avatar     *string
	CoverImage *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Bio == nil && p.Avatar == nil && p.CoverImage == nil
}

// UserRepository defines the interface for user-related database operations.
// Lookups return apperror.ErrNotFound when no user matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByLogin matches either the username or the email.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*entity.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	// SetRefreshToken stores token; nil unsets it.
	SetRefreshToken(ctx context.Context, id primitive.ObjectID, token *string) error

	ProfileByID(ctx context.Context, id primitive.ObjectID) (*entity.ProfileView, error)
	ProfileByUsername(ctx context.Context, username string) (*entity.ProfileView, error)
	SummaryByUsername(ctx context.Context, username string) (*entity.UserSummary, error)
}
