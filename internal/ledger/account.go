package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
)

// AccountKey uniquely identifies a balance-bearing account.
// Comparable so it can index maps directly.
type AccountKey struct {
	// Scope: "bidder", "pot", "payment", "protocol", "referral"
	Scope string

	// EntityID holds a uuid (first 16 bytes) or a derived address
	EntityID [32]byte

	// SubType within the scope, e.g. "wallet", "escrow", "accrual"
	SubType string

	// AssetID is the settlement asset, e.g. "USDC"
	AssetID string
}

// NewBidderAccountKey is the bidder's external wallet. It is the only
// scope allowed to carry a negative tracked balance, since deposits
// originate outside the ledger.
func NewBidderAccountKey(bidder uuid.UUID, assetID string) AccountKey {
	var entity [32]byte
	copy(entity[:16], bidder[:])
	return AccountKey{
		Scope:    "bidder",
		EntityID: entity,
		SubType:  "wallet",
		AssetID:  assetID,
	}
}

// NewPotAccountKey is the escrow pot for one bidder on one auction
func NewPotAccountKey(auction addressing.Address, bidder uuid.UUID, assetID string) AccountKey {
	pot := addressing.Derive(addressing.NamespaceBidderPot, auction[:], bidder[:])
	return AccountKey{
		Scope:    "pot",
		EntityID: pot,
		SubType:  "escrow",
		AssetID:  assetID,
	}
}

// NewPaymentAccountKey accumulates swept winning bids for one auction
func NewPaymentAccountKey(auction addressing.Address, assetID string) AccountKey {
	payment := addressing.Derive(addressing.NamespacePaymentAccount, auction[:])
	return AccountKey{
		Scope:    "payment",
		EntityID: payment,
		SubType:  "accrual",
		AssetID:  assetID,
	}
}

// NewProtocolFeeAccountKey is the store-wide fee sink
func NewProtocolFeeAccountKey(assetID string) AccountKey {
	return AccountKey{
		Scope:   "protocol",
		SubType: "fees",
		AssetID: assetID,
	}
}

// NewReferralAccountKey accrues referral rewards for one referrer
func NewReferralAccountKey(referrer uuid.UUID, assetID string) AccountKey {
	var entity [32]byte
	copy(entity[:16], referrer[:])
	return AccountKey{
		Scope:    "referral",
		EntityID: entity,
		SubType:  "rewards",
		AssetID:  assetID,
	}
}

// AccountPath renders a stable human-readable key for logs and rows
func (k AccountKey) AccountPath() string {
	return fmt.Sprintf("%s:%x:%s:%s", k.Scope, k.EntityID, k.SubType, k.AssetID)
}
