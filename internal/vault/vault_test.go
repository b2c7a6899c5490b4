package vault

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// ============================================================================
// Registry Tests
// ============================================================================

func TestAddCreatesPoolAndPinsAuthority(t *testing.T) {
	r := NewRegistry()
	vaultID, meta, owner := uuid.New(), uuid.New(), uuid.New()

	if err := r.Add(vaultID, 0, meta, owner, 10); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	pool, ok := r.Pool(vaultID, 0)
	if !ok {
		t.Fatal("pool not found after Add")
	}
	if pool.Balance != 10 {
		t.Errorf("pool balance = %d, want 10", pool.Balance)
	}
	if pool.Custodian != owner {
		t.Error("first deposit should set the depositor as custodian")
	}

	got, ok := r.Authority(vaultID)
	if !ok || got != owner {
		t.Error("first deposit should pin the vault authority")
	}
}

func TestAddRejectsForeignAuthority(t *testing.T) {
	r := NewRegistry()
	vaultID, meta := uuid.New(), uuid.New()

	if err := r.Add(vaultID, 0, meta, uuid.New(), 5); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Add(vaultID, 0, meta, uuid.New(), 5); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for second depositor, got %v", err)
	}
}

func TestAddRejectsAssetMismatch(t *testing.T) {
	r := NewRegistry()
	vaultID, owner := uuid.New(), uuid.New()

	if err := r.Add(vaultID, 0, uuid.New(), owner, 5); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Add(vaultID, 0, uuid.New(), owner, 5); !errors.Is(err, ErrPoolAssetMismatch) {
		t.Errorf("expected ErrPoolAssetMismatch, got %v", err)
	}
}

func TestWithdrawBoundsToBalance(t *testing.T) {
	r := NewRegistry()
	vaultID, meta, owner := uuid.New(), uuid.New(), uuid.New()

	if err := r.Add(vaultID, 1, meta, owner, 3); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Withdraw(vaultID, 1, 2); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if err := r.Withdraw(vaultID, 1, 2); !errors.Is(err, ErrInsufficientPool) {
		t.Errorf("expected ErrInsufficientPool, got %v", err)
	}

	pool, _ := r.Pool(vaultID, 1)
	if pool.Balance != 1 {
		t.Errorf("pool balance = %d, want 1", pool.Balance)
	}
}

func TestWithdrawUnknownPool(t *testing.T) {
	r := NewRegistry()
	if err := r.Withdraw(uuid.New(), 0, 1); !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestSetCustodianReassignsControl(t *testing.T) {
	r := NewRegistry()
	vaultID, meta, owner := uuid.New(), uuid.New(), uuid.New()

	if err := r.Add(vaultID, 0, meta, owner, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	custodian := uuid.New()
	if err := r.SetCustodian(vaultID, 0, custodian); err != nil {
		t.Fatalf("SetCustodian failed: %v", err)
	}

	pool, _ := r.Pool(vaultID, 0)
	if pool.Custodian != custodian {
		t.Error("custodian not reassigned")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	r := NewRegistry()
	vaultID, meta, owner := uuid.New(), uuid.New(), uuid.New()
	if err := r.Add(vaultID, 2, meta, owner, 7); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	restored := NewRegistry()
	for _, p := range r.Pools() {
		restored.RestorePool(p)
	}
	for v, o := range r.Authorities() {
		restored.RestoreAuthority(v, o)
	}

	pool, ok := restored.Pool(vaultID, 2)
	if !ok || pool.Balance != 7 {
		t.Error("restored registry lost pool state")
	}
	if got, ok := restored.Authority(vaultID); !ok || got != owner {
		t.Error("restored registry lost vault authority")
	}
}
