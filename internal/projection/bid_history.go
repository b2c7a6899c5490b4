package projection

// BidHistoryEntry represents one escrow movement for a bidder on an
// auction, as seen by the projection layer.
type BidHistoryEntry struct {
	Sequence      int64
	AuctionID     string
	BidderAccount string
	AssetID       string
	Amount        int64
	Action        string // "escrow" or "refund"
	Timestamp     int64
}

// BidHistoryProjection maintains a queryable in-memory bid history
type BidHistoryProjection struct {
	entries []BidHistoryEntry
}

func NewBidHistoryProjection() *BidHistoryProjection {
	return &BidHistoryProjection{
		entries: make([]BidHistoryEntry, 0),
	}
}

// AddEntry records a bid movement
func (p *BidHistoryProjection) AddEntry(entry BidHistoryEntry) {
	p.entries = append(p.entries, entry)
}

// QueryByAuction returns the most recent entries for an auction
func (p *BidHistoryProjection) QueryByAuction(auctionID string, limit int) []BidHistoryEntry {
	result := make([]BidHistoryEntry, 0)

	for i := len(p.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if p.entries[i].AuctionID == auctionID {
			result = append(result, p.entries[i])
		}
	}

	return result
}

// QueryByBidder returns the most recent entries for a bidder account
func (p *BidHistoryProjection) QueryByBidder(bidderAccount string, limit int) []BidHistoryEntry {
	result := make([]BidHistoryEntry, 0)

	for i := len(p.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if p.entries[i].BidderAccount == bidderAccount {
			result = append(result, p.entries[i])
		}
	}

	return result
}
