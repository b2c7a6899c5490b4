package query

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amountScale is the fixed-point scale of ledger amounts: all balances
// are stored in micro units of the settlement asset.
const amountScale = 6

// BidderBalanceResponse represents one bidder's money view for API
// queries. The wallet balance is net of deposits, which originate
// outside the ledger, so an active bidder normally shows negative.
type BidderBalanceResponse struct {
	BidderID uuid.UUID `json:"bidder_id"`
	Asset    string    `json:"asset"`

	// Ledger balances (from journal entries)
	WalletBalance   int64 `json:"wallet_balance"`   // net external wallet movement
	ReferralRewards int64 `json:"referral_rewards"` // accrued referral share

	// Display strings (derived at query time, NOT ledger balances)
	WalletDisplay   string `json:"wallet_display"`
	ReferralDisplay string `json:"referral_display"`

	// Metadata
	AsOfSequence int64 `json:"as_of_sequence"` // last applied event sequence
}

// DisplayAmount renders a micro-unit amount as a decimal string,
// e.g. 1_500_000 -> "1.5"
func DisplayAmount(amount int64) string {
	return decimal.New(amount, -amountScale).String()
}
