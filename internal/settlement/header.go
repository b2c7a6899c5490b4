package settlement

import (
	"fmt"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/ledger"
)

// PrizeConfig declares one winner placement's prize. The slice on
// Settings is rank-ordered: config i belongs to the rank-i winner.
// Multiple ranks may draw from the same pool index.
type PrizeConfig struct {
	PrizeIndex uint8
	Quantity   int64
	Kind       PrizeKind
}

// PrizeState is the per-config disbursement record, positionally
// aligned with Settings.PrizeConfigs
type PrizeState struct {
	MintedCount int64
	Validated   bool
	Claimed     bool
}

// Settings is the immutable configuration on a settlement header
type Settings struct {
	OpenWinnerConstraint    WinnerConstraint
	OpenNonWinnerConstraint NonWinnerConstraint

	// OpenDistributionPool is the vault pool backing the open
	// distribution; nil when none is attached
	OpenDistributionPool  *uint8
	OpenDistributionPrice *int64

	PrizeConfigs []PrizeConfig
}

// Header binds an auction to its vault, payment sink, and prize layout
type Header struct {
	Address   addressing.Address
	Authority uuid.UUID
	Auction   addressing.Address
	Vault     uuid.UUID

	// CustodyID is the identity the header acts under while it holds
	// custody of master records
	CustodyID uuid.UUID

	PaymentAccount ledger.AccountKey

	Status   Status
	Settings Settings

	PrizeStates []PrizeState

	ValidatedCount int

	// PendingAuthorityReturns counts master records whose custody the
	// header still holds
	PendingAuthorityReturns int64

	// OpenDistributionMinted counts units minted through the open
	// distribution
	OpenDistributionMinted int64

	// OpenDistributionValidated gates open-distribution redemption
	OpenDistributionValidated bool
}

// advanceTo moves status forward, never back
func (h *Header) advanceTo(s Status) {
	if s <= h.Status {
		return
	}
	if !h.Status.CanTransitionTo(s) {
		panic(fmt.Sprintf("FATAL: invalid status transition on header %s: %s -> %s",
			h.Address, h.Status, s))
	}
	h.Status = s
}

// DecrementPendingReturns releases one held master-record custody.
// Going below zero means a redemption ran that validation never
// accounted for, so the process halts.
func (h *Header) DecrementPendingReturns() {
	if h.PendingAuthorityReturns == 0 {
		panic(fmt.Sprintf("FATAL: pending authority returns underflow on header %s", h.Address))
	}
	h.PendingAuthorityReturns--
}

// maybeFinish advances Disbursing to Finished once every prize is
// claimed and no custody remains held
func (h *Header) maybeFinish() {
	if h.Status != StatusDisbursing {
		return
	}
	for _, ps := range h.PrizeStates {
		if !ps.Claimed {
			return
		}
	}
	if h.PendingAuthorityReturns != 0 {
		return
	}
	h.advanceTo(StatusFinished)
}

// Ticket records which settlement flavors a bidder has already
// redeemed. Each flag is set at most once.
type Ticket struct {
	Auction addressing.Address
	Bidder  uuid.UUID

	PrizeRedeemed            bool
	OpenDistributionRedeemed bool
}
