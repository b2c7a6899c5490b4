package auction

import (
	"AuctionLedger/internal/addressing"
)

// Bid is one admitted entry in a capped ladder
type Bid struct {
	// PotID is the bidder's escrow pot address
	PotID addressing.Address

	Amount int64
}

// BidState holds the admitted bids for one auction. Capped auctions keep
// an ascending ladder of at most Capacity record-breaking bids; open
// auctions admit everything and recognize no winners.
type BidState struct {
	Capped   bool
	Capacity int

	// Bids is sorted ascending by amount; the last entry is the top bid
	Bids []Bid
}

// NewCappedBidState allocates a ladder bounded to capacity entries
func NewCappedBidState(capacity int) *BidState {
	return &BidState{
		Capped:   true,
		Capacity: capacity,
		Bids:     make([]Bid, 0, capacity),
	}
}

// NewOpenBidState allocates the unlimited-participation variant
func NewOpenBidState() *BidState {
	return &BidState{Capped: false}
}

// Place admits a bid into the ladder. A capped ladder only admits bids
// strictly above the current top; anything else is a successful no-op
// and Place returns false with no state change. On admission any prior
// entry from the same pot is pruned, the bid is appended, and the
// lowest entry is evicted if the ladder would exceed capacity.
func (bs *BidState) Place(b Bid) bool {
	if !bs.Capped {
		return true
	}
	if n := len(bs.Bids); n > 0 && b.Amount <= bs.Bids[n-1].Amount {
		return false
	}
	bs.remove(b.PotID)
	bs.Bids = append(bs.Bids, b)
	if len(bs.Bids) > bs.Capacity {
		bs.Bids = append(bs.Bids[:0:0], bs.Bids[1:]...)
	}
	return true
}

// Cancel removes a pot's entry if present; absent entries are a no-op
func (bs *BidState) Cancel(potID addressing.Address) {
	if bs.Capped {
		bs.remove(potID)
	}
}

// WinnerRank returns the pot's placement, rank 0 being the top bid.
// Open auctions never recognize winners.
func (bs *BidState) WinnerRank(potID addressing.Address) (int, bool) {
	if !bs.Capped {
		return 0, false
	}
	for i, b := range bs.Bids {
		if b.PotID == potID {
			return len(bs.Bids) - 1 - i, true
		}
	}
	return 0, false
}

// Amount returns the admitted amount for a pot, if any
func (bs *BidState) Amount(potID addressing.Address) (int64, bool) {
	for _, b := range bs.Bids {
		if b.PotID == potID {
			return b.Amount, true
		}
	}
	return 0, false
}

// Top returns the current highest admitted amount
func (bs *BidState) Top() (int64, bool) {
	if len(bs.Bids) == 0 {
		return 0, false
	}
	return bs.Bids[len(bs.Bids)-1].Amount, true
}

// Len returns the number of admitted bids
func (bs *BidState) Len() int {
	return len(bs.Bids)
}

func (bs *BidState) remove(potID addressing.Address) {
	for i, b := range bs.Bids {
		if b.PotID == potID {
			bs.Bids = append(bs.Bids[:i], bs.Bids[i+1:]...)
			return
		}
	}
}
