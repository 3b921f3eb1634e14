package storage

import (
	"context"

	"github.com/waymarkd/waymark/internal/model"
)

// Storage defines the interface for data persistence.
// The three record collections (points, allowed sessions, admins) are
// independent; cascading rules live in the services, not here.
type Storage interface {
	// Point operations
	SavePoint(ctx context.Context, point *model.Point) error
	GetPoint(ctx context.Context, id model.PointID) (*model.Point, error)
	DeletePoint(ctx context.Context, id model.PointID) error
	ListPointsByStatus(ctx context.Context, status model.PointStatus) ([]*model.Point, error)
	ListPointsByOwner(ctx context.Context, owner model.SessionCode) ([]*model.Point, error)

	// Allowed session operations
	SaveAllowedSession(ctx context.Context, session *model.AllowedSession) error
	GetAllowedSession(ctx context.Context, code model.SessionCode) (*model.AllowedSession, error)
	DeleteAllowedSession(ctx context.Context, code model.SessionCode) error
	ListAllowedSessions(ctx context.Context) ([]*model.AllowedSession, error)

	// Admin operations
	// CreateAdmin is insert-or-confirm: saving a code that is already an
	// admin succeeds, so concurrent first logins cannot fail each other.
	CreateAdmin(ctx context.Context, code model.SessionCode) error
	AdminExists(ctx context.Context, code model.SessionCode) (bool, error)
	// DeleteAdmin reports whether a record was actually removed
	DeleteAdmin(ctx context.Context, code model.SessionCode) (bool, error)
}
