package registry

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/waymarkd/waymark/internal/dependencies/clock"
	"github.com/waymarkd/waymark/internal/model"
	"github.com/waymarkd/waymark/internal/storage"
)

// Config holds the registry's secrets.
// AdminCodeHash, when set, is a bcrypt hash and takes precedence over the
// plain AdminCode.
type Config struct {
	OwnerCode     model.SessionCode
	AdminCode     string
	AdminCodeHash string
}

// Service manages the allow-list and the admin set.
// All mutations are owner-only; admin login is the one self-service path in.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// New creates a new registry Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
}

// AllowSession adds a session code to the allow-list
func (s *Service) AllowSession(ctx context.Context, actor model.Actor, code model.SessionCode) (*model.AllowedSession, error) {
	if !actor.Role.IsOwner() {
		return nil, model.ErrOwnerRequired
	}

	trimmed := model.SessionCode(strings.TrimSpace(string(code)))
	if trimmed == "" {
		return nil, model.ErrSessionCodeRequired
	}

	if _, err := s.storage.GetAllowedSession(ctx, trimmed); err == nil {
		return nil, model.ErrSessionAlreadyAllowed
	} else if !errors.Is(err, model.ErrAllowedSessionNotFound) {
		return nil, err
	}

	session := &model.AllowedSession{
		SessionCode: trimmed,
		AddedBy:     actor.Session,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveAllowedSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session allowed", slog.String("session_code", string(trimmed)))
	return session, nil
}

// RemoveSession deletes an allow-list entry and cascades to the admin set,
// so a removed session loses admin privilege at the same time
func (s *Service) RemoveSession(ctx context.Context, actor model.Actor, code model.SessionCode) error {
	if !actor.Role.IsOwner() {
		return model.ErrOwnerRequired
	}

	if err := s.storage.DeleteAllowedSession(ctx, code); err != nil {
		return err
	}

	demoted, err := s.storage.DeleteAdmin(ctx, code)
	if err != nil {
		return err
	}
	if demoted {
		s.logger.Info("admin demoted on allow-list removal", slog.String("session_code", string(code)))
	}

	return nil
}

// ListAllowed returns the allow-list, newest first
func (s *Service) ListAllowed(ctx context.Context, actor model.Actor) ([]*model.AllowedSession, error) {
	if !actor.Role.IsOwner() {
		return nil, model.ErrOwnerRequired
	}
	return s.storage.ListAllowedSessions(ctx)
}

// Promote grants admin privilege to an allow-listed session.
// Promoting a session that is already an admin succeeds without change.
func (s *Service) Promote(ctx context.Context, actor model.Actor, code model.SessionCode) (alreadyAdmin bool, err error) {
	if !actor.Role.IsOwner() {
		return false, model.ErrOwnerRequired
	}

	if _, err := s.storage.GetAllowedSession(ctx, code); err != nil {
		if errors.Is(err, model.ErrAllowedSessionNotFound) {
			return false, model.ErrSessionNotOnAllowedList
		}
		return false, err
	}

	exists, err := s.storage.AdminExists(ctx, code)
	if err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}

	if err := s.storage.CreateAdmin(ctx, code); err != nil {
		return false, err
	}

	s.logger.Info("session promoted to admin", slog.String("session_code", string(code)))
	return false, nil
}

// Demote revokes admin privilege.
// Demoting a session that was not an admin is reported, not an error.
func (s *Service) Demote(ctx context.Context, actor model.Actor, code model.SessionCode) (wasAdmin bool, err error) {
	if !actor.Role.IsOwner() {
		return false, model.ErrOwnerRequired
	}

	removed, err := s.storage.DeleteAdmin(ctx, code)
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Info("admin demoted", slog.String("session_code", string(code)))
	}
	return removed, nil
}

// AdminLogin upgrades a session to admin when it presents the shared secret.
// The owner code may always attempt a login; any other session must be on the
// allow-list first. The admin record write is insert-or-confirm, so a repeat
// login (or a concurrent first login) succeeds rather than erroring.
func (s *Service) AdminLogin(ctx context.Context, session model.SessionCode, adminCode string) error {
	if session == "" {
		return model.ErrSessionRequired
	}

	if session == s.cfg.OwnerCode {
		if !s.secretMatches(adminCode) {
			return model.ErrInvalidAdminCode
		}
		// The owner is implicitly admin; no record is persisted for it
		return nil
	}

	if _, err := s.storage.GetAllowedSession(ctx, session); err != nil {
		if errors.Is(err, model.ErrAllowedSessionNotFound) {
			return model.ErrSessionNotAllowed
		}
		return err
	}

	if !s.secretMatches(adminCode) {
		return model.ErrInvalidAdminCode
	}

	if err := s.storage.CreateAdmin(ctx, session); err != nil {
		return err
	}

	s.logger.Info("admin login", slog.String("session_code", string(session)))
	return nil
}

// secretMatches checks the presented admin code against the configured secret
func (s *Service) secretMatches(adminCode string) bool {
	if adminCode == "" {
		return false
	}
	if s.cfg.AdminCodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminCodeHash), []byte(adminCode)) == nil
	}
	if s.cfg.AdminCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AdminCode), []byte(adminCode)) == 1
}
