package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	points          map[model.PointID]*model.Point
	allowedSessions map[model.SessionCode]*model.AllowedSession
	admins          map[model.SessionCode]struct{}
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		points:          make(map[model.PointID]*model.Point),
		allowedSessions: make(map[model.SessionCode]*model.AllowedSession),
		admins:          make(map[model.SessionCode]struct{}),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Point operations

func (s *Storage) SavePoint(ctx context.Context, point *model.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *point
	s.points[point.ID] = &copied
	return nil
}

func (s *Storage) GetPoint(ctx context.Context, id model.PointID) (*model.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	point, ok := s.points[id]
	if !ok {
		return nil, model.ErrPointNotFound
	}
	copied := *point
	return &copied, nil
}

func (s *Storage) DeletePoint(ctx context.Context, id model.PointID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.points, id)
	return nil
}

func (s *Storage) ListPointsByStatus(ctx context.Context, status model.PointStatus) ([]*model.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	points := make([]*model.Point, 0)
	for _, point := range s.points {
		if point.Status == status {
			copied := *point
			points = append(points, &copied)
		}
	}
	sortPoints(points)
	return points, nil
}

func (s *Storage) ListPointsByOwner(ctx context.Context, owner model.SessionCode) ([]*model.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	points := make([]*model.Point, 0)
	for _, point := range s.points {
		if point.OwnerSessionCode == owner {
			copied := *point
			points = append(points, &copied)
		}
	}
	sortPoints(points)
	return points, nil
}

// sortPoints orders oldest first so listings are stable across calls
func sortPoints(points []*model.Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].CreatedAt.Equal(points[j].CreatedAt) {
			return points[i].ID < points[j].ID
		}
		return points[i].CreatedAt.Before(points[j].CreatedAt)
	})
}

// Allowed session operations

func (s *Storage) SaveAllowedSession(ctx context.Context, session *model.AllowedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.allowedSessions[session.SessionCode] = &copied
	return nil
}

func (s *Storage) GetAllowedSession(ctx context.Context, code model.SessionCode) (*model.AllowedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.allowedSessions[code]
	if !ok {
		return nil, model.ErrAllowedSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteAllowedSession(ctx context.Context, code model.SessionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.allowedSessions[code]; !ok {
		return model.ErrAllowedSessionNotFound
	}
	delete(s.allowedSessions, code)
	return nil
}

func (s *Storage) ListAllowedSessions(ctx context.Context) ([]*model.AllowedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.AllowedSession, 0, len(s.allowedSessions))
	for _, session := range s.allowedSessions {
		copied := *session
		sessions = append(sessions, &copied)
	}
	// Newest first
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].SessionCode < sessions[j].SessionCode
		}
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Admin operations

func (s *Storage) CreateAdmin(ctx context.Context, code model.SessionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[code] = struct{}{}
	return nil
}

func (s *Storage) AdminExists(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[code]
	return ok, nil
}

func (s *Storage) DeleteAdmin(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.admins[code]
	delete(s.admins, code)
	return ok, nil
}
