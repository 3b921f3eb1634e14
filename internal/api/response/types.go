package response

import (
	"time"

	"github.com/waymarkd/waymark/internal/model"
)

// Point represents a map point in API responses
type Point struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	X                int       `json:"x"`
	Z                int       `json:"z"`
	OwnerSessionCode string    `json:"ownerSessionCode"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PointFromModel converts a model.Point to a response Point
func PointFromModel(p *model.Point) Point {
	return Point{
		ID:               string(p.ID),
		Name:             p.Name,
		X:                p.X,
		Z:                p.Z,
		OwnerSessionCode: string(p.OwnerSessionCode),
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PointsFromModel converts a slice of points
func PointsFromModel(points []*model.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = PointFromModel(p)
	}
	return out
}

// AllowedSession represents an allow-list entry in API responses
type AllowedSession struct {
	SessionCode string    `json:"sessionCode"`
	AddedBy     string    `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AllowedSessionFromModel converts a model.AllowedSession
func AllowedSessionFromModel(s *model.AllowedSession) AllowedSession {
	return AllowedSession{
		SessionCode: string(s.SessionCode),
		AddedBy:     string(s.AddedBy),
		CreatedAt:   s.CreatedAt,
	}
}

// AllowedSessionsFromModel converts a slice of allow-list entries
func AllowedSessionsFromModel(sessions []*model.AllowedSession) []AllowedSession {
	out := make([]AllowedSession, len(sessions))
	for i, s := range sessions {
		out[i] = AllowedSessionFromModel(s)
	}
	return out
}

// Message is a plain confirmation payload
type Message struct {
	Message string `json:"message"`
}

// AllowSessionResponse confirms an allow-list addition
type AllowSessionResponse struct {
	Message string         `json:"message"`
	Session AllowedSession `json:"session"`
}

// LoginResponse is the response for admin login
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OwnerCheckResponse reports whether the caller is the owner
type OwnerCheckResponse struct {
	IsOwner bool `json:"isOwner"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
