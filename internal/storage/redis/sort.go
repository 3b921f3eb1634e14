package redis

import (
	"sort"

	"github.com/waymarkd/waymark/internal/model"
)

// sortPointsByCreatedAt orders oldest first so listings are stable
func sortPointsByCreatedAt(points []*model.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].CreatedAt.Equal(points[j].CreatedAt) {
			return points[i].ID < points[j].ID
		}
		return points[i].CreatedAt.Before(points[j].CreatedAt)
	})
}

// sortAllowedSessionsNewestFirst matches the presentation order of the
// owner's allow-list view
func sortAllowedSessionsNewestFirst(sessions []*model.AllowedSession) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].SessionCode < sessions[j].SessionCode
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}
