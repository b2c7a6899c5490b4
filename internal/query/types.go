package query

import "time"

// AuctionSummaryResponse represents one auction's money view for API
// queries. Proceeds accrue on the payment account as winning bids are
// claimed and leave it when the authority withdraws.
type AuctionSummaryResponse struct {
	AuctionID       string `json:"auction_id"`
	Asset           string `json:"asset"`
	PaymentBalance  int64  `json:"payment_balance"`
	PaymentDisplay  string `json:"payment_display"`
	BidEntries      int64  `json:"bid_entries"`
	LastBidSequence int64  `json:"last_bid_sequence"`
	AsOfSequence    int64  `json:"as_of_sequence"`
}

// BidHistoryResponse represents one escrow movement for API queries.
type BidHistoryResponse struct {
	Sequence      int64  `json:"sequence"`
	AuctionID     string `json:"auction_id"`
	BidderAccount string `json:"bidder_account"`
	AssetID       string `json:"asset_id"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Action        string `json:"action"`
	EventType     string `json:"event_type"`
	AsOfSequence  int64  `json:"as_of_sequence"`
}

// JournalHistoryEntry represents a journal entry for API queries.
type JournalHistoryEntry struct {
	JournalID     string    `json:"journal_id"`
	BatchID       string    `json:"batch_id"`
	Sequence      int64     `json:"sequence"`
	DebitAccount  string    `json:"debit_account"`
	CreditAccount string    `json:"credit_account"`
	AssetID       string    `json:"asset_id"`
	Amount        int64     `json:"amount"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// IntegrityReport is the result of an integrity verification check.
type IntegrityReport struct {
	IsHealthy        bool              `json:"is_healthy"`
	HashChainBreaks  []int64           `json:"hash_chain_breaks,omitempty"`
	UnbalancedAssets []UnbalancedAsset `json:"unbalanced_assets,omitempty"`
}

// UnbalancedAsset represents an asset with non-zero global balance sum.
type UnbalancedAsset struct {
	AssetID   string `json:"asset_id"`
	Imbalance int64  `json:"imbalance"`
}
