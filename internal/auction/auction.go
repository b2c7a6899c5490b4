package auction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
)

// Auction is the ledger record for one auction
type Auction struct {
	Address   addressing.Address
	Authority uuid.UUID
	Resource  uuid.UUID

	SettlementAsset string

	BidState *BidState

	LastBidTime *time.Time

	// HardEndDuration is the configured distance from start to the hard
	// deadline; EndedAt pins the actual close time once start runs.
	HardEndDuration *time.Duration
	EndedAt         *time.Time

	// EndGap is the anti-snipe window; cleared by a buy-now close
	EndGap *time.Duration

	PriceFloor  int64
	BuyNowPrice *int64

	Phase Phase
}

// Ended reports whether bidding is closed at the given instant.
// A terminal phase always counts as ended. Otherwise the close time is
// the later of the hard deadline and the last bid plus the gap, with
// one exception: buy-now auctions treat the hard deadline as a ceiling
// that gap extensions never push past.
func (a *Auction) Ended(now time.Time) bool {
	if a.Phase.IsTerminal() {
		return true
	}

	var gapEnd *time.Time
	if a.LastBidTime != nil && a.EndGap != nil {
		t := a.LastBidTime.Add(*a.EndGap)
		gapEnd = &t
	}

	switch {
	case a.EndedAt == nil && gapEnd == nil:
		return false
	case a.EndedAt == nil:
		return !now.Before(*gapEnd)
	case gapEnd == nil:
		return !now.Before(*a.EndedAt)
	}

	closeAt := *a.EndedAt
	if gapEnd.After(closeAt) && a.BuyNowPrice == nil {
		closeAt = *gapEnd
	}
	return !now.Before(closeAt)
}

// closeNow flips the auction into its terminal phase and pins EndedAt
// if it is not already in the past
func (a *Auction) closeNow(now time.Time) {
	target := PhaseEnded
	if a.Phase == PhaseBuyNowStarted {
		target = PhaseBuyNowEnded
	}
	if !a.Phase.CanTransitionTo(target) {
		panic(fmt.Sprintf("FATAL: invalid phase transition: %s -> %s", a.Phase, target))
	}
	a.Phase = target
	if a.EndedAt == nil || now.Before(*a.EndedAt) {
		t := now
		a.EndedAt = &t
	}
}

// BidderRecord tracks one bidder's standing on one auction. At most one
// non-cancelled record exists per (bidder, auction).
type BidderRecord struct {
	Bidder  uuid.UUID
	Auction addressing.Address

	LastBidAmount int64
	LastBidTime   time.Time
	Cancelled     bool
}
