package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/waymarkd/waymark/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newPoint(id string, owner string, status model.PointStatus, createdAt time.Time) *model.Point {
	return &model.Point{
		ID:               model.PointID(id),
		Name:             "Base",
		X:                100,
		Z:                -50,
		OwnerSessionCode: model.SessionCode(owner),
		Status:           status,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

// Point tests

func (s *StorageSuite) TestSaveAndGetPoint() {
	point := s.newPoint("point-1", "session-1", model.StatusPrivate, time.Now().UTC())

	err := s.storage.SavePoint(s.ctx, point)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPoint(s.ctx, "point-1")
	s.Require().NoError(err)
	s.Equal(point.ID, retrieved.ID)
	s.Equal(point.Name, retrieved.Name)
	s.Equal(point.X, retrieved.X)
	s.Equal(point.Z, retrieved.Z)
	s.Equal(point.Status, retrieved.Status)
}

func (s *StorageSuite) TestGetPointNotFound() {
	_, err := s.storage.GetPoint(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPointNotFound)
}

func (s *StorageSuite) TestDeletePoint() {
	point := s.newPoint("point-1", "session-1", model.StatusPrivate, time.Now().UTC())
	_ = s.storage.SavePoint(s.ctx, point)

	err := s.storage.DeletePoint(s.ctx, "point-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPoint(s.ctx, "point-1")
	s.ErrorIs(err, model.ErrPointNotFound)
}

func (s *StorageSuite) TestDeletePointCleansIndexes() {
	point := s.newPoint("point-1", "session-1", model.StatusPublic, time.Now().UTC())
	_ = s.storage.SavePoint(s.ctx, point)

	_ = s.storage.DeletePoint(s.ctx, "point-1")

	public, err := s.storage.ListPointsByStatus(s.ctx, model.StatusPublic)
	s.Require().NoError(err)
	s.Empty(public)

	owned, err := s.storage.ListPointsByOwner(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Empty(owned)
}

func (s *StorageSuite) TestDeleteMissingPointSucceeds() {
	err := s.storage.DeletePoint(s.ctx, "nonexistent")
	s.NoError(err)
}

func (s *StorageSuite) TestListPointsByStatus() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-1", "s1", model.StatusPublic, base))
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-2", "s1", model.StatusPrivate, base))
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-3", "s2", model.StatusPublic, base.Add(time.Minute)))

	public, err := s.storage.ListPointsByStatus(s.ctx, model.StatusPublic)
	s.Require().NoError(err)
	s.Require().Len(public, 2)
	// Oldest first
	s.Equal(model.PointID("point-1"), public[0].ID)
	s.Equal(model.PointID("point-3"), public[1].ID)
}

func (s *StorageSuite) TestStatusChangeMovesIndexEntry() {
	point := s.newPoint("point-1", "s1", model.StatusPrivate, time.Now().UTC())
	_ = s.storage.SavePoint(s.ctx, point)

	point.Status = model.StatusPending
	_ = s.storage.SavePoint(s.ctx, point)

	private, err := s.storage.ListPointsByStatus(s.ctx, model.StatusPrivate)
	s.Require().NoError(err)
	s.Empty(private)

	pending, err := s.storage.ListPointsByStatus(s.ctx, model.StatusPending)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *StorageSuite) TestListPointsByOwner() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-1", "s1", model.StatusPrivate, base))
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-2", "s1", model.StatusPublic, base.Add(time.Minute)))
	_ = s.storage.SavePoint(s.ctx, s.newPoint("point-3", "s2", model.StatusPrivate, base))

	owned, err := s.storage.ListPointsByOwner(s.ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(owned, 2)
	s.Equal(model.PointID("point-1"), owned[0].ID)
	s.Equal(model.PointID("point-2"), owned[1].ID)
}

// Allowed session tests

func (s *StorageSuite) TestSaveAndGetAllowedSession() {
	session := &model.AllowedSession{
		SessionCode: "session-1",
		AddedBy:     "owner-code",
		CreatedAt:   time.Now().UTC(),
	}

	err := s.storage.SaveAllowedSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAllowedSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.SessionCode, retrieved.SessionCode)
	s.Equal(session.AddedBy, retrieved.AddedBy)
}

func (s *StorageSuite) TestGetAllowedSessionNotFound() {
	_, err := s.storage.GetAllowedSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAllowedSessionNotFound)
}

func (s *StorageSuite) TestDeleteAllowedSession() {
	_ = s.storage.SaveAllowedSession(s.ctx, &model.AllowedSession{SessionCode: "session-1"})

	err := s.storage.DeleteAllowedSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetAllowedSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrAllowedSessionNotFound)
}

func (s *StorageSuite) TestDeleteAllowedSessionNotFound() {
	err := s.storage.DeleteAllowedSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAllowedSessionNotFound)
}

func (s *StorageSuite) TestListAllowedSessionsNewestFirst() {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SaveAllowedSession(s.ctx, &model.AllowedSession{SessionCode: "older", CreatedAt: base})
	_ = s.storage.SaveAllowedSession(s.ctx, &model.AllowedSession{SessionCode: "newer", CreatedAt: base.Add(time.Hour)})

	list, err := s.storage.ListAllowedSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(model.SessionCode("newer"), list[0].SessionCode)
	s.Equal(model.SessionCode("older"), list[1].SessionCode)
}

// Admin tests

func (s *StorageSuite) TestCreateAndCheckAdmin() {
	err := s.storage.CreateAdmin(s.ctx, "session-1")
	s.Require().NoError(err)

	exists, err := s.storage.AdminExists(s.ctx, "session-1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.AdminExists(s.ctx, "session-2")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestCreateAdminTwiceSucceeds() {
	s.Require().NoError(s.storage.CreateAdmin(s.ctx, "session-1"))
	s.NoError(s.storage.CreateAdmin(s.ctx, "session-1"))
}

func (s *StorageSuite) TestDeleteAdmin() {
	_ = s.storage.CreateAdmin(s.ctx, "session-1")

	removed, err := s.storage.DeleteAdmin(s.ctx, "session-1")
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.storage.DeleteAdmin(s.ctx, "session-1")
	s.Require().NoError(err)
	s.False(removed)
}
