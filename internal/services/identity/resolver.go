package identity

import (
	"context"

	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/storage"
)

// Resolver classifies session codes into roles.
// The owner code is injected at construction and compared by exact string
// equality; admin status comes from the persisted admin set.
type Resolver struct {
	storage   storage.Storage
	ownerCode model.SessionCode
}

// NewResolver creates a new Resolver
func NewResolver(storage storage.Storage, ownerCode model.SessionCode) *Resolver {
	return &Resolver{
		storage:   storage,
		ownerCode: ownerCode,
	}
}

// Resolve returns the role held by the session code.
// An empty or unknown code resolves to the unprivileged user role; token
// presence on scoped calls is enforced at the API boundary, not here.
func (r *Resolver) Resolve(ctx context.Context, code model.SessionCode) (model.Role, error) {
	if code == "" {
		return model.RoleUser, nil
	}

	if code == r.ownerCode {
		return model.RoleOwner, nil
	}

	isAdmin, err := r.storage.AdminExists(ctx, code)
	if err != nil {
		return model.RoleUser, err
	}
	if isAdmin {
		return model.RoleAdmin, nil
	}

	return model.RoleUser, nil
}

// OwnerCode returns the configured owner session code
func (r *Resolver) OwnerCode() model.SessionCode {
	return r.ownerCode
}

// IsOwner reports whether the code is the fixed owner code
func (r *Resolver) IsOwner(code model.SessionCode) bool {
	return code != "" && code == r.ownerCode
}
