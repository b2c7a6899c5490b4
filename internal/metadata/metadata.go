package metadata

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrDescriptorNotFound = errors.New("asset descriptor not found")
	ErrDescriptorExists   = errors.New("asset descriptor already registered")
	ErrSupplyExhausted    = errors.New("master record supply exhausted")
	ErrUnauthorized       = errors.New("caller is not the update authority")
)

// Descriptor describes one prize asset: who created it, who may update
// it, and the master-record supply counters.
type Descriptor struct {
	ID uuid.UUID

	// UpdateAuthority controls custody reassignment and minting
	UpdateAuthority uuid.UUID

	Creator uuid.UUID
	Name    string

	// MaxSupply caps mints from the master record; nil is unlimited
	MaxSupply     *int64
	CurrentSupply int64
}

// Store holds every registered descriptor. Owned by the single-threaded
// core.
type Store struct {
	descriptors map[uuid.UUID]*Descriptor
}

func NewStore() *Store {
	return &Store{
		descriptors: make(map[uuid.UUID]*Descriptor),
	}
}

// Register adds a descriptor. Registration is create-once.
func (s *Store) Register(d *Descriptor) error {
	if _, ok := s.descriptors[d.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDescriptorExists, d.ID)
	}
	s.descriptors[d.ID] = d
	return nil
}

// Get looks up a descriptor
func (s *Store) Get(id uuid.UUID) (*Descriptor, bool) {
	d, ok := s.descriptors[id]
	return d, ok
}

// SetUpdateAuthority reassigns control of the descriptor. The caller
// must hold the current authority.
func (s *Store) SetUpdateAuthority(id, current, next uuid.UUID) error {
	d, ok := s.descriptors[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDescriptorNotFound, id)
	}
	if d.UpdateAuthority != current {
		return fmt.Errorf("%w: descriptor %s", ErrUnauthorized, id)
	}
	d.UpdateAuthority = next
	return nil
}

// MintOne mints a copy from the master record, bounded by MaxSupply
func (s *Store) MintOne(id uuid.UUID) error {
	d, ok := s.descriptors[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDescriptorNotFound, id)
	}
	if d.MaxSupply != nil && d.CurrentSupply >= *d.MaxSupply {
		return fmt.Errorf("%w: descriptor %s at %d of %d",
			ErrSupplyExhausted, id, d.CurrentSupply, *d.MaxSupply)
	}
	d.CurrentSupply++
	return nil
}

// Descriptors returns every descriptor, for snapshots and projections
func (s *Store) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(s.descriptors))
	for _, d := range s.descriptors {
		out = append(out, d)
	}
	return out
}

// Count returns the number of descriptors
func (s *Store) Count() int {
	return len(s.descriptors)
}

// RestoreDescriptor reinstates a descriptor from a snapshot
func (s *Store) RestoreDescriptor(d *Descriptor) {
	s.descriptors[d.ID] = d
}
