package redis

import (
	"fmt"

	"github.com/waymarkd/waymark/internal/model"
)

// Key prefix for all waymark data
const keyPrefix = "waymark"

// Key generation functions for each entity type

// pointKey returns the Redis key for a Point
func pointKey(id model.PointID) string {
	return fmt.Sprintf("%s:point:%s", keyPrefix, id)
}

// pointsByStatusIndexKey returns the Redis key for the SET of point keys in a status
func pointsByStatusIndexKey(status model.PointStatus) string {
	return fmt.Sprintf("%s:idx:points_status:%s", keyPrefix, status)
}

// pointsByOwnerIndexKey returns the Redis key for the SET of point keys per owner
func pointsByOwnerIndexKey(owner model.SessionCode) string {
	return fmt.Sprintf("%s:idx:points_owner:%s", keyPrefix, owner)
}

// allowedSessionKey returns the Redis key for an AllowedSession
func allowedSessionKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:allowed:%s", keyPrefix, code)
}

// allowedSessionsIndexKey returns the Redis key for the SET of allow-list entries
func allowedSessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:allowed", keyPrefix)
}

// adminKey returns the Redis key for an admin record
func adminKey(code model.SessionCode) string {
	return fmt.Sprintf("%s:admin:%s", keyPrefix, code)
}
