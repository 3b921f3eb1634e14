// Package access holds the pure authorization rules for map points.
// Decisions depend only on the actor, the point, and the requested action;
// nothing here touches storage or has side effects.
package access

import (
	"github.com/waymarkd/waymark/internal/model"
)

// Action is an operation an actor can request on a point
type Action string

const (
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionShare    Action = "share"
	ActionModerate Action = "moderate" // approve or reject a pending point
)

// CanCreate reports whether the actor may create a point.
// Any session-holding actor may create; the new point is owned by that session.
func CanCreate(actor model.Actor) error {
	if actor.Session == "" {
		return model.ErrSessionRequired
	}
	return nil
}

// Can decides whether the actor may perform the action on the point.
// A nil return means allow; a non-nil return is the denial reason.
func Can(actor model.Actor, point *model.Point, action Action) error {
	switch action {
	case ActionEdit, ActionDelete:
		// Private and pending points belong exclusively to their owner;
		// admins only gain control once a point is public.
		if point.Status == model.StatusPublic {
			if !actor.Role.IsAdmin() {
				return model.ErrAdminRequired
			}
			return nil
		}
		if point.OwnerSessionCode != actor.Session || actor.Session == "" {
			return model.ErrNotPointOwner
		}
		return nil

	case ActionShare:
		if point.OwnerSessionCode != actor.Session || actor.Session == "" {
			return model.ErrNotPointOwner
		}
		return nil

	case ActionModerate:
		if !actor.Role.IsAdmin() {
			return model.ErrAdminRequired
		}
		return nil
	}

	return model.ErrNotPointOwner
}

// CanViewPending reports whether the actor may see the point while it is
// not yet public. Pending points are visible to their owner and to
// moderators only.
func CanViewPending(actor model.Actor, point *model.Point) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	return actor.Session != "" && point.OwnerSessionCode == actor.Session
}
