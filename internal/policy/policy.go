package policy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUnauthorized = errors.New("caller is not the store authority")

// Store is the listing policy: a public store accepts any creator, a
// curated one only whitelisted creators. Owned by the single-threaded
// core.
type Store struct {
	public    bool
	authority *uuid.UUID
	whitelist map[uuid.UUID]bool
}

func NewStore() *Store {
	return &Store{
		whitelist: make(map[uuid.UUID]bool),
	}
}

// Configure sets the public flag. The first call pins the store
// authority; later calls must come from it.
func (s *Store) Configure(authority uuid.UUID, public bool) error {
	if s.authority != nil && *s.authority != authority {
		return fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	if s.authority == nil {
		a := authority
		s.authority = &a
	}
	s.public = public
	return nil
}

// SetWhitelist activates or deactivates a creator
func (s *Store) SetWhitelist(authority, creator uuid.UUID, activated bool) error {
	if s.authority != nil && *s.authority != authority {
		return fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	if s.authority == nil {
		a := authority
		s.authority = &a
	}
	s.whitelist[creator] = activated
	return nil
}

// CanList reports whether a creator may back a prize on this store
func (s *Store) CanList(creator uuid.UUID) bool {
	return s.public || s.whitelist[creator]
}

// Public reports the store visibility flag
func (s *Store) Public() bool {
	return s.public
}

// Whitelist returns the activation map, for snapshots and projections
func (s *Store) Whitelist() map[uuid.UUID]bool {
	return s.whitelist
}

// Authority returns the pinned store authority, if any
func (s *Store) Authority() *uuid.UUID {
	return s.authority
}

// Restore reinstates the policy state from a snapshot
func (s *Store) Restore(authority *uuid.UUID, public bool, whitelist map[uuid.UUID]bool) {
	s.authority = authority
	s.public = public
	for k, v := range whitelist {
		s.whitelist[k] = v
	}
}
