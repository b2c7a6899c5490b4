package vault

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPoolNotFound      = errors.New("vault pool not found")
	ErrPoolAssetMismatch = errors.New("vault pool holds a different asset")
	ErrInsufficientPool  = errors.New("insufficient pool balance")
	ErrUnauthorized      = errors.New("caller is not the vault authority")
)

// Pool is one indexed container of fungible prize units inside a vault
type Pool struct {
	Vault uuid.UUID
	Index uint8

	// Metadata identifies the asset the pool holds
	Metadata uuid.UUID

	Balance int64

	// Custodian controls withdrawals; settlement validation reassigns
	// this to the settlement header for master records
	Custodian uuid.UUID
}

type poolKey struct {
	Vault uuid.UUID
	Index uint8
}

// Registry tracks every vault pool. Owned by the single-threaded core.
type Registry struct {
	pools map[poolKey]*Pool
	// authorities binds each vault to the identity that created it
	authorities map[uuid.UUID]uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		pools:       make(map[poolKey]*Pool),
		authorities: make(map[uuid.UUID]uuid.UUID),
	}
}

// Add deposits units into a pool, creating it on first use. The first
// deposit into a vault pins its authority; later deposits must come
// from the same identity and carry the same asset.
func (r *Registry) Add(vaultID uuid.UUID, index uint8, metadata, authority uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit amount must be positive, got %d", amount)
	}
	if owner, ok := r.authorities[vaultID]; ok {
		if owner != authority {
			return fmt.Errorf("%w: vault %s", ErrUnauthorized, vaultID)
		}
	} else {
		r.authorities[vaultID] = authority
	}

	key := poolKey{Vault: vaultID, Index: index}
	pool, ok := r.pools[key]
	if !ok {
		r.pools[key] = &Pool{
			Vault:     vaultID,
			Index:     index,
			Metadata:  metadata,
			Balance:   amount,
			Custodian: authority,
		}
		return nil
	}
	if pool.Metadata != metadata {
		return fmt.Errorf("%w: pool %s/%d", ErrPoolAssetMismatch, vaultID, index)
	}
	pool.Balance += amount
	return nil
}

// Pool looks up a vault pool
func (r *Registry) Pool(vaultID uuid.UUID, index uint8) (*Pool, bool) {
	pool, ok := r.pools[poolKey{Vault: vaultID, Index: index}]
	return pool, ok
}

// Withdraw removes units from a pool. Draining past zero is a
// resource-insufficiency error, not a fatal one, because callers race
// for a shared pool.
func (r *Registry) Withdraw(vaultID uuid.UUID, index uint8, amount int64) error {
	pool, ok := r.pools[poolKey{Vault: vaultID, Index: index}]
	if !ok {
		return fmt.Errorf("%w: %s/%d", ErrPoolNotFound, vaultID, index)
	}
	if amount <= 0 {
		return fmt.Errorf("withdraw amount must be positive, got %d", amount)
	}
	if pool.Balance < amount {
		return fmt.Errorf("%w: pool %s/%d has %d, need %d",
			ErrInsufficientPool, vaultID, index, pool.Balance, amount)
	}
	pool.Balance -= amount
	return nil
}

// SetCustodian reassigns withdrawal control over a pool
func (r *Registry) SetCustodian(vaultID uuid.UUID, index uint8, custodian uuid.UUID) error {
	pool, ok := r.pools[poolKey{Vault: vaultID, Index: index}]
	if !ok {
		return fmt.Errorf("%w: %s/%d", ErrPoolNotFound, vaultID, index)
	}
	pool.Custodian = custodian
	return nil
}

// Authority returns the vault's owning identity
func (r *Registry) Authority(vaultID uuid.UUID) (uuid.UUID, bool) {
	owner, ok := r.authorities[vaultID]
	return owner, ok
}

// Pools returns every pool, for snapshots and projections
func (r *Registry) Pools() []*Pool {
	out := make([]*Pool, 0, len(r.pools))
	for _, p := range r.pools {
		out = append(out, p)
	}
	return out
}

// Count returns the number of pools
func (r *Registry) Count() int {
	return len(r.pools)
}

// Authorities returns a copy of the vault ownership map for snapshots
func (r *Registry) Authorities() map[uuid.UUID]uuid.UUID {
	out := make(map[uuid.UUID]uuid.UUID, len(r.authorities))
	for k, v := range r.authorities {
		out[k] = v
	}
	return out
}

// RestorePool reinstates a pool from a snapshot
func (r *Registry) RestorePool(p *Pool) {
	r.pools[poolKey{Vault: p.Vault, Index: p.Index}] = p
}

// RestoreAuthority reinstates a vault's ownership from a snapshot
func (r *Registry) RestoreAuthority(vaultID, owner uuid.UUID) {
	r.authorities[vaultID] = owner
}
