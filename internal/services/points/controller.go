package points

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/waymarkd/waymark/internal/access"
	"github.com/waymarkd/waymark/internal/dependencies/clock"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/storage"
)

// Controller manages the point lifecycle state machine.
// Every mutation authorizes the actor through the access rules, then applies
// the change as one read-modify-write against storage. Concurrent writes to
// the same point are last-writer-wins.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new points Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Create adds a new point owned by the actor's session, always private
func (c *Controller) Create(ctx context.Context, actor model.Actor, name string, x, z int) (*model.Point, error) {
	if err := access.CanCreate(actor); err != nil {
		return nil, err
	}

	trimmed, err := model.ValidatePointName(name)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	point := &model.Point{
		ID:               model.PointID(uuid.NewString()),
		Name:             trimmed,
		X:                x,
		Z:                z,
		OwnerSessionCode: actor.Session,
		Status:           model.StatusPrivate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.storage.SavePoint(ctx, point); err != nil {
		return nil, err
	}

	c.logger.Info("point created",
		slog.String("point_id", string(point.ID)),
		slog.String("name", point.Name),
	)

	return point, nil
}

// Update overwrites name and coordinates in place, leaving status untouched.
// Private and pending points can only be edited by their owner; public points
// only by a moderator. The name rules are re-checked identically to Create.
func (c *Controller) Update(ctx context.Context, actor model.Actor, id model.PointID, name string, x, z int) (*model.Point, error) {
	point, err := c.storage.GetPoint(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Can(actor, point, access.ActionEdit); err != nil {
		return nil, err
	}

	trimmed, err := model.ValidatePointName(name)
	if err != nil {
		return nil, err
	}

	point.Name = trimmed
	point.X = x
	point.Z = z
	point.UpdatedAt = c.clock.Now()

	if err := c.storage.SavePoint(ctx, point); err != nil {
		return nil, err
	}

	return point, nil
}

// Share submits a private point for moderation
func (c *Controller) Share(ctx context.Context, actor model.Actor, id model.PointID) (*model.Point, error) {
	return c.transition(ctx, actor, id, model.TransitionShare, access.ActionShare)
}

// Approve publishes a pending point
func (c *Controller) Approve(ctx context.Context, actor model.Actor, id model.PointID) (*model.Point, error) {
	return c.transition(ctx, actor, id, model.TransitionApprove, access.ActionModerate)
}

// Reject returns a pending point to its owner as private
func (c *Controller) Reject(ctx context.Context, actor model.Actor, id model.PointID) (*model.Point, error) {
	return c.transition(ctx, actor, id, model.TransitionReject, access.ActionModerate)
}

// transition loads, authorizes, advances, and saves one lifecycle edge
func (c *Controller) transition(ctx context.Context, actor model.Actor, id model.PointID, t model.Transition, action access.Action) (*model.Point, error) {
	point, err := c.storage.GetPoint(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Can(actor, point, action); err != nil {
		return nil, err
	}

	if err := point.ApplyTransition(t); err != nil {
		return nil, err
	}

	point.UpdatedAt = c.clock.Now()

	if err := c.storage.SavePoint(ctx, point); err != nil {
		return nil, err
	}

	c.logger.Info("point status changed",
		slog.String("point_id", string(point.ID)),
		slog.String("transition", string(t)),
		slog.String("status", string(point.Status)),
	)

	return point, nil
}

// Delete removes a point under the same ownership rules as editing
func (c *Controller) Delete(ctx context.Context, actor model.Actor, id model.PointID) error {
	point, err := c.storage.GetPoint(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Can(actor, point, access.ActionDelete); err != nil {
		return err
	}

	if err := c.storage.DeletePoint(ctx, id); err != nil {
		return err
	}

	c.logger.Info("point deleted", slog.String("point_id", string(point.ID)))
	return nil
}

// ListPublic returns all public points; no session is needed
func (c *Controller) ListPublic(ctx context.Context) ([]*model.Point, error) {
	return c.storage.ListPointsByStatus(ctx, model.StatusPublic)
}

// ListOwned returns every point owned by the actor's session, any status
func (c *Controller) ListOwned(ctx context.Context, actor model.Actor) ([]*model.Point, error) {
	if actor.Session == "" {
		return nil, model.ErrSessionRequired
	}
	return c.storage.ListPointsByOwner(ctx, actor.Session)
}

// ListPending returns points awaiting approval, for moderators only
func (c *Controller) ListPending(ctx context.Context, actor model.Actor) ([]*model.Point, error) {
	if err := access.Can(actor, nil, access.ActionModerate); err != nil {
		return nil, err
	}
	return c.storage.ListPointsByStatus(ctx, model.StatusPending)
}
