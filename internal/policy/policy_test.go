package policy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ============================================================================
// Store Policy Tests
// ============================================================================

func TestFirstConfigurePinsAuthority(t *testing.T) {
	s := NewStore()
	authority := uuid.New()

	if err := s.Configure(authority, true); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if got := s.Authority(); got == nil || *got != authority {
		t.Error("first Configure should pin the store authority")
	}
	if err := s.Configure(uuid.New(), false); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign authority, got %v", err)
	}
}

func TestPublicStoreListsAnyCreator(t *testing.T) {
	s := NewStore()
	if err := s.Configure(uuid.New(), true); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if !s.CanList(uuid.New()) {
		t.Error("public store should accept any creator")
	}
}

func TestCuratedStoreRequiresWhitelist(t *testing.T) {
	s := NewStore()
	authority := uuid.New()
	creator := uuid.New()

	if err := s.Configure(authority, false); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if s.CanList(creator) {
		t.Error("curated store should reject unlisted creator")
	}

	if err := s.SetWhitelist(authority, creator, true); err != nil {
		t.Fatalf("SetWhitelist failed: %v", err)
	}
	if !s.CanList(creator) {
		t.Error("whitelisted creator should list")
	}

	if err := s.SetWhitelist(authority, creator, false); err != nil {
		t.Fatalf("SetWhitelist failed: %v", err)
	}
	if s.CanList(creator) {
		t.Error("deactivated creator should not list")
	}
}

func TestWhitelistRejectsForeignAuthority(t *testing.T) {
	s := NewStore()
	if err := s.SetWhitelist(uuid.New(), uuid.New(), true); err != nil {
		t.Fatalf("first SetWhitelist should pin authority: %v", err)
	}
	if err := s.SetWhitelist(uuid.New(), uuid.New(), true); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	s := NewStore()
	authority, creator := uuid.New(), uuid.New()
	if err := s.Configure(authority, false); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if err := s.SetWhitelist(authority, creator, true); err != nil {
		t.Fatalf("SetWhitelist failed: %v", err)
	}

	restored := NewStore()
	restored.Restore(s.Authority(), s.Public(), s.Whitelist())

	if !restored.CanList(creator) {
		t.Error("restored store lost whitelist state")
	}
	if err := restored.Configure(uuid.New(), true); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("restored store lost pinned authority, got %v", err)
	}
}
