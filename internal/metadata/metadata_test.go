package metadata

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ============================================================================
// Store Tests
// ============================================================================

func TestRegisterIsCreateOnce(t *testing.T) {
	s := NewStore()
	d := &Descriptor{ID: uuid.New(), UpdateAuthority: uuid.New(), Creator: uuid.New(), Name: "art"}

	if err := s.Register(d); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := s.Register(d); !errors.Is(err, ErrDescriptorExists) {
		t.Errorf("expected ErrDescriptorExists, got %v", err)
	}
}

func TestMintOneRespectsMaxSupply(t *testing.T) {
	s := NewStore()
	maxSupply := int64(2)
	id := uuid.New()
	if err := s.Register(&Descriptor{ID: id, MaxSupply: &maxSupply}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.MintOne(id); err != nil {
		t.Fatalf("first mint failed: %v", err)
	}
	if err := s.MintOne(id); err != nil {
		t.Fatalf("second mint failed: %v", err)
	}
	if err := s.MintOne(id); !errors.Is(err, ErrSupplyExhausted) {
		t.Errorf("expected ErrSupplyExhausted, got %v", err)
	}

	d, _ := s.Get(id)
	if d.CurrentSupply != 2 {
		t.Errorf("current supply = %d, want 2", d.CurrentSupply)
	}
}

func TestMintOneUnlimitedWhenNoCap(t *testing.T) {
	s := NewStore()
	id := uuid.New()
	if err := s.Register(&Descriptor{ID: id}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	for i := 0; i < 100; i++ {
		if err := s.MintOne(id); err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
	}
}

func TestSetUpdateAuthorityRequiresCurrentHolder(t *testing.T) {
	s := NewStore()
	id, holder, next := uuid.New(), uuid.New(), uuid.New()
	if err := s.Register(&Descriptor{ID: id, UpdateAuthority: holder}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := s.SetUpdateAuthority(id, uuid.New(), next); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong holder, got %v", err)
	}
	if err := s.SetUpdateAuthority(id, holder, next); err != nil {
		t.Fatalf("SetUpdateAuthority failed: %v", err)
	}

	d, _ := s.Get(id)
	if d.UpdateAuthority != next {
		t.Error("authority not reassigned")
	}
}

func TestMintUnknownDescriptor(t *testing.T) {
	s := NewStore()
	if err := s.MintOne(uuid.New()); !errors.Is(err, ErrDescriptorNotFound) {
		t.Errorf("expected ErrDescriptorNotFound, got %v", err)
	}
}
