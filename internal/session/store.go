package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
)

const profileFile = "profile.json"

// profile is the on-disk layout: exactly three string-valued keys.
type profile struct {
	AuthToken   string `json:"auth_token,omitempty"`
	GuestCartID string `json:"guest_cart_id,omitempty"`
	UserCartID  string `json:"user_cart_id,omitempty"`
}

// Store owns the persisted identity state: the credential, the guest cart
// id, and the user cart id. It is the only shared mutable resource in the
// client; every write publishes AuthChanged and CartChanged synchronously
// so no reader observes a stale value across a suspension point.
//
// A Store built with an empty directory is inert: reads return absent,
// writes are no-ops, nothing ever errors.
type Store struct {
	dir    string
	bus    events.Bus
	logger *zap.Logger
}

// NewStore builds a store persisting under dir. Pass an empty dir to get
// an inert store for contexts with no durable storage.
func NewStore(dir string, bus events.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, bus: bus, logger: logger}
}

// Credential returns the stored bearer token, if any.
func (s *Store) Credential() (string, bool) {
	p := s.load()
	if p.AuthToken == "" {
		return "", false
	}
	return p.AuthToken, true
}

// IsAuthenticated reports whether a credential is present.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Credential()
	return ok
}

// Role decodes the role claim out of the credential. Decode failure is
// silent and indistinguishable from "no role".
func (s *Store) Role() (domain.Role, bool) {
	token, ok := s.Credential()
	if !ok {
		return "", false
	}
	return auth.DecodeRole(token)
}

// SetSession persists the credential and user cart id together, then
// notifies both topics.
func (s *Store) SetSession(token, userCartID string) {
	p := s.load()
	p.AuthToken = token
	p.UserCartID = userCartID
	s.save(p)

	s.notify()
}

// ClearSession removes the credential and user cart id, then notifies
// both topics. The guest cart id deliberately survives so a later
// anonymous session continues uninterrupted.
func (s *Store) ClearSession() {
	p := s.load()
	p.AuthToken = ""
	p.UserCartID = ""
	s.save(p)

	s.notify()
}

// EffectiveCartID returns the cart id the next request should use: the
// user cart while authenticated, the guest cart otherwise. The very first
// call in a fresh profile mints and persists a guest id; subsequent calls
// are pure reads. The value is recomputed on every call, never cached, so
// it always reflects current authentication state.
func (s *Store) EffectiveCartID() string {
	if s.dir == "" {
		return ""
	}

	p := s.load()
	if p.AuthToken != "" && p.UserCartID != "" {
		return p.UserCartID
	}
	if p.GuestCartID == "" {
		p.GuestCartID = "guest_" + uuid.NewString()
		s.save(p)
		s.logger.Debug("minted guest cart id", zap.String("cart_id", p.GuestCartID))
	}
	return p.GuestCartID
}

func (s *Store) load() profile {
	var p profile
	if s.dir == "" {
		return p
	}
	data, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("unreadable profile, treating as empty", zap.Error(err))
		return profile{}
	}
	return p
}

func (s *Store) save(p profile) {
	if s.dir == "" {
		return
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.logger.Warn("unable to create profile dir", zap.Error(err))
		return
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		s.logger.Warn("unable to encode profile", zap.Error(err))
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, profileFile), data, 0o600); err != nil {
		s.logger.Warn("unable to write profile", zap.Error(err))
	}
}

func (s *Store) notify() {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.TopicAuthChanged)
	s.bus.Publish(events.TopicCartChanged)
}
