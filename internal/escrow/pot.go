package escrow

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/ledger"
)

var (
	ErrPotNotFound = errors.New("escrow pot not found")
	ErrPotNotSwept = errors.New("escrow pot has not been swept")
	ErrPotClosed   = errors.New("escrow pot already closed")
	ErrPotEmptied  = errors.New("escrow pot already emptied")
)

// Pot is one bidder's escrow holding account on one auction
type Pot struct {
	PotID   addressing.Address
	Bidder  uuid.UUID
	Auction addressing.Address

	// Account is the ledger account holding the escrowed funds
	Account ledger.AccountKey

	// Emptied is set once a claim sweeps the pot
	Emptied bool

	// Closed is set once the emptied pot is reclaimed
	Closed bool
}

// Registry tracks every escrow pot. Owned by the single-threaded core.
type Registry struct {
	pots map[addressing.Address]*Pot
}

func NewRegistry() *Registry {
	return &Registry{
		pots: make(map[addressing.Address]*Pot),
	}
}

// Open allocates the pot for (auction, bidder), binding it to the
// settlement asset. Re-opening an existing pot returns it unchanged.
func (r *Registry) Open(auction addressing.Address, bidder uuid.UUID, assetID string) *Pot {
	potID := addressing.Derive(addressing.NamespaceBidderPot, auction[:], bidder[:])
	if pot, ok := r.pots[potID]; ok {
		return pot
	}
	pot := &Pot{
		PotID:   potID,
		Bidder:  bidder,
		Auction: auction,
		Account: ledger.NewPotAccountKey(auction, bidder, assetID),
	}
	r.pots[potID] = pot
	return pot
}

// Get looks up the pot for (auction, bidder)
func (r *Registry) Get(auction addressing.Address, bidder uuid.UUID) (*Pot, bool) {
	potID := addressing.Derive(addressing.NamespaceBidderPot, auction[:], bidder[:])
	pot, ok := r.pots[potID]
	return pot, ok
}

// MarkEmptied records that a claim swept the pot. Sweeping an emptied
// pot is the caller's guarded no-op path, so a second call errors to
// force the caller through that path.
func (r *Registry) MarkEmptied(potID addressing.Address) error {
	pot, ok := r.pots[potID]
	if !ok {
		return ErrPotNotFound
	}
	if pot.Emptied {
		return fmt.Errorf("%w: pot %s", ErrPotEmptied, potID)
	}
	pot.Emptied = true
	return nil
}

// Close reclaims an emptied pot. A pot still holding funds cannot
// close.
func (r *Registry) Close(potID addressing.Address) error {
	pot, ok := r.pots[potID]
	if !ok {
		return ErrPotNotFound
	}
	if pot.Closed {
		return fmt.Errorf("%w: pot %s", ErrPotClosed, potID)
	}
	if !pot.Emptied {
		return fmt.Errorf("%w: pot %s", ErrPotNotSwept, potID)
	}
	pot.Closed = true
	return nil
}

// Pots returns every pot, for snapshots and projections
func (r *Registry) Pots() map[addressing.Address]*Pot {
	return r.pots
}

// Count returns the number of pots
func (r *Registry) Count() int {
	return len(r.pots)
}

// RestorePot reinstates a pot from a snapshot
func (r *Registry) RestorePot(pot *Pot) {
	r.pots[pot.PotID] = pot
}
