package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Point operations

func (s *Storage) SavePoint(ctx context.Context, point *model.Point) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}

	pKey := pointKey(point.ID)

	// A save may move the point between status sets; read the previous
	// status so the stale index entry can be removed in the same pipeline
	var previousStatus model.PointStatus
	if existing, err := s.GetPoint(ctx, point.ID); err == nil {
		previousStatus = existing.Status
	} else if !errors.Is(err, model.ErrPointNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, 0)
	if previousStatus != "" && previousStatus != point.Status {
		pipe.SRem(ctx, pointsByStatusIndexKey(previousStatus), pKey)
	}
	pipe.SAdd(ctx, pointsByStatusIndexKey(point.Status), pKey)
	pipe.SAdd(ctx, pointsByOwnerIndexKey(point.OwnerSessionCode), pKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPoint(ctx context.Context, id model.PointID) (*model.Point, error) {
	data, err := s.client.Get(ctx, pointKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPointNotFound
		}
		return nil, err
	}

	var point model.Point
	if err := json.Unmarshal(data, &point); err != nil {
		return nil, err
	}
	return &point, nil
}

func (s *Storage) DeletePoint(ctx context.Context, id model.PointID) error {
	point, err := s.GetPoint(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPointNotFound) {
			return nil
		}
		return err
	}

	pKey := pointKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, pKey)
	pipe.SRem(ctx, pointsByStatusIndexKey(point.Status), pKey)
	pipe.SRem(ctx, pointsByOwnerIndexKey(point.OwnerSessionCode), pKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPointsByStatus(ctx context.Context, status model.PointStatus) ([]*model.Point, error) {
	return s.listPointsByIndex(ctx, pointsByStatusIndexKey(status))
}

func (s *Storage) ListPointsByOwner(ctx context.Context, owner model.SessionCode) ([]*model.Point, error) {
	return s.listPointsByIndex(ctx, pointsByOwnerIndexKey(owner))
}

// listPointsByIndex fetches every point named by an index set via MGET
func (s *Storage) listPointsByIndex(ctx context.Context, indexKey string) ([]*model.Point, error) {
	pointKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(pointKeys) == 0 {
		return []*model.Point{}, nil
	}

	values, err := s.client.MGet(ctx, pointKeys...).Result()
	if err != nil {
		return nil, err
	}

	points := make([]*model.Point, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Stale index entry
		}
		var point model.Point
		if err := json.Unmarshal([]byte(val.(string)), &point); err != nil {
			continue // Skip invalid data
		}
		points = append(points, &point)
	}

	sortPointsByCreatedAt(points)
	return points, nil
}

// Allowed session operations

func (s *Storage) SaveAllowedSession(ctx context.Context, session *model.AllowedSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	aKey := allowedSessionKey(session.SessionCode)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, aKey, data, 0)
	pipe.SAdd(ctx, allowedSessionsIndexKey(), aKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAllowedSession(ctx context.Context, code model.SessionCode) (*model.AllowedSession, error) {
	data, err := s.client.Get(ctx, allowedSessionKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAllowedSessionNotFound
		}
		return nil, err
	}

	var session model.AllowedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteAllowedSession(ctx context.Context, code model.SessionCode) error {
	aKey := allowedSessionKey(code)

	deleted, err := s.client.Del(ctx, aKey).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrAllowedSessionNotFound
	}

	return s.client.SRem(ctx, allowedSessionsIndexKey(), aKey).Err()
}

func (s *Storage) ListAllowedSessions(ctx context.Context) ([]*model.AllowedSession, error) {
	sessionKeys, err := s.client.SMembers(ctx, allowedSessionsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(sessionKeys) == 0 {
		return []*model.AllowedSession{}, nil
	}

	values, err := s.client.MGet(ctx, sessionKeys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.AllowedSession, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Stale index entry
		}
		var session model.AllowedSession
		if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, &session)
	}

	sortAllowedSessionsNewestFirst(sessions)
	return sessions, nil
}

// Admin operations

func (s *Storage) CreateAdmin(ctx context.Context, code model.SessionCode) error {
	// SETNX keeps this idempotent: a concurrent or repeated create of the
	// same admin record is confirmation, not an error
	return s.client.SetNX(ctx, adminKey(code), "1", 0).Err()
}

func (s *Storage) AdminExists(ctx context.Context, code model.SessionCode) (bool, error) {
	exists, err := s.client.Exists(ctx, adminKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) DeleteAdmin(ctx context.Context, code model.SessionCode) (bool, error) {
	deleted, err := s.client.Del(ctx, adminKey(code)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}
