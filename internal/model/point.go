package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PointID uniquely identifies a map point
type PointID string

// PointStatus represents a point's position in the publication lifecycle
type PointStatus string

const (
	StatusPrivate PointStatus = "private" // visible to its owner only
	StatusPending PointStatus = "pending" // awaiting moderator approval
	StatusPublic  PointStatus = "public"  // visible to everyone
)

// Valid reports whether the status is one of the known lifecycle states
func (s PointStatus) Valid() bool {
	switch s {
	case StatusPrivate, StatusPending, StatusPublic:
		return true
	}
	return false
}

// Transition names a lifecycle edge between point statuses
type Transition string

const (
	TransitionShare   Transition = "share"   // owner submits the point for approval
	TransitionApprove Transition = "approve" // moderator publishes a pending point
	TransitionReject  Transition = "reject"  // moderator returns a pending point to its owner
)

// transitionEdge is one row of the lifecycle table
type transitionEdge struct {
	From PointStatus
	To   PointStatus
}

// transitions is the closed set of legal status edges.
// Status is never written outside ApplyTransition.
var transitions = map[Transition]transitionEdge{
	TransitionShare:   {From: StatusPrivate, To: StatusPending},
	TransitionApprove: {From: StatusPending, To: StatusPublic},
	TransitionReject:  {From: StatusPending, To: StatusPrivate},
}

// MaxPointNameLength is the longest allowed point name after trimming
const MaxPointNameLength = 100

// Point represents a named location on the shared game-world map
type Point struct {
	ID               PointID     `json:"id"`
	Name             string      `json:"name"`
	X                int         `json:"x"`
	Z                int         `json:"z"`
	OwnerSessionCode SessionCode `json:"ownerSessionCode"`
	Status           PointStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// ApplyTransition advances the point along one lifecycle edge.
// Illegal edges return the transition error describing the current status.
func (p *Point) ApplyTransition(t Transition) error {
	edge, ok := transitions[t]
	if !ok {
		return ErrPointNotPending
	}

	if p.Status != edge.From {
		return transitionError(t, p.Status)
	}

	p.Status = edge.To
	return nil
}

// transitionError maps a refused transition to its domain error
func transitionError(t Transition, current PointStatus) error {
	if t == TransitionShare {
		switch current {
		case StatusPending:
			return ErrPointAlreadyPending
		case StatusPublic:
			return ErrPointAlreadyPublic
		}
	}
	return ErrPointNotPending
}

// ValidatePointName trims the name and checks the shared naming rules.
// Create and edit both run through here so a partial client cannot bypass it.
func ValidatePointName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrPointNameRequired
	}
	// The limit counts characters, not bytes
	if utf8.RuneCountInString(trimmed) > MaxPointNameLength {
		return "", ErrPointNameTooLong
	}
	return trimmed, nil
}
