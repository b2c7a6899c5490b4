package auction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
)

var (
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrAuctionExists      = errors.New("auction slot occupied by another authority")
	ErrUnauthorized       = errors.New("caller is not the auction authority")
	ErrNotBidding         = errors.New("auction is not accepting bids")
	ErrBidBelowFloor      = errors.New("bid does not exceed the price floor")
	ErrActiveBid          = errors.New("bidder already has an active bid")
	ErrNoActiveBid        = errors.New("bidder has no active bid")
	ErrAuctionLive        = errors.New("auction is running with admitted bids")
	ErrWinnerCannotCancel = errors.New("winning bid cannot be cancelled after close")
)

type recordKey struct {
	Auction addressing.Address
	Bidder  uuid.UUID
}

// Book holds every auction and bidder record. It is owned by the
// single-threaded core; no locking.
type Book struct {
	auctions map[addressing.Address]*Auction
	records  map[recordKey]*BidderRecord
}

func NewBook() *Book {
	return &Book{
		auctions: make(map[addressing.Address]*Auction),
		records:  make(map[recordKey]*BidderRecord),
	}
}

// PlaceResult reports what a bid admission actually did
type PlaceResult struct {
	// Admitted is false for the successful no-op paths: a bid that did
	// not beat the top of the ladder, or a lazy close.
	Admitted bool

	// Closed is true when this call flipped the auction terminal,
	// either lazily or through buy-now.
	Closed bool
}

// Create provisions the auction at the slot derived from the resource.
// Re-creating the same slot with the same authority returns the
// existing record; a different authority is rejected.
func (b *Book) Create(authority, resource uuid.UUID, settlementAsset string, winnerCap int64,
	hardEnd, endGap *time.Duration, priceFloor int64, buyNowPrice *int64) (*Auction, error) {

	addr := addressing.Derive(addressing.NamespaceAuction, resource[:])
	if existing, ok := b.auctions[addr]; ok {
		if existing.Authority != authority {
			return nil, fmt.Errorf("%w: resource %s", ErrAuctionExists, resource)
		}
		return existing, nil
	}

	var bidState *BidState
	if winnerCap > 0 {
		bidState = NewCappedBidState(int(winnerCap))
	} else {
		bidState = NewOpenBidState()
	}

	a := &Auction{
		Address:         addr,
		Authority:       authority,
		Resource:        resource,
		SettlementAsset: settlementAsset,
		BidState:        bidState,
		HardEndDuration: hardEnd,
		EndGap:          endGap,
		PriceFloor:      priceFloor,
		BuyNowPrice:     buyNowPrice,
		Phase:           PhaseCreated,
	}
	b.auctions[addr] = a
	return a, nil
}

// Start opens bidding. The hard deadline is pinned here, once, from the
// configured duration. A running auction with admitted bids cannot be
// restarted.
func (b *Book) Start(addr addressing.Address, authority uuid.UUID, now time.Time) error {
	a, ok := b.auctions[addr]
	if !ok {
		return ErrAuctionNotFound
	}
	if a.Authority != authority {
		return ErrUnauthorized
	}
	if a.Phase.IsBidding() && a.BidState.Len() > 0 {
		return ErrAuctionLive
	}
	target := PhaseStarted
	if a.BuyNowPrice != nil {
		target = PhaseBuyNowStarted
	}
	if !a.Phase.CanTransitionTo(target) {
		return fmt.Errorf("invalid phase transition: %s -> %s", a.Phase, target)
	}

	if a.EndedAt == nil && a.HardEndDuration != nil {
		t := now.Add(*a.HardEndDuration)
		a.EndedAt = &t
	}
	a.Phase = target
	return nil
}

// End force-closes the auction by authority action. Already-terminal
// auctions are a no-op.
func (b *Book) End(addr addressing.Address, authority uuid.UUID, now time.Time) error {
	a, ok := b.auctions[addr]
	if !ok {
		return ErrAuctionNotFound
	}
	if a.Authority != authority {
		return ErrUnauthorized
	}
	if a.Phase.IsTerminal() {
		return nil
	}
	a.closeNow(now)
	return nil
}

// PlaceBid admits a bid. An auction past its close condition is flipped
// terminal instead, and the call succeeds without admitting (the caller
// sees Admitted=false, Closed=true). A bid at or above the buy-now
// price ends the auction on the spot.
func (b *Book) PlaceBid(addr addressing.Address, bidder uuid.UUID, amount int64, now time.Time) (PlaceResult, error) {
	a, ok := b.auctions[addr]
	if !ok {
		return PlaceResult{}, ErrAuctionNotFound
	}

	// Lazy close: the first arrival after the close condition settles
	// the phase rather than admitting the bid.
	if !a.Phase.IsTerminal() && a.Ended(now) {
		a.closeNow(now)
		return PlaceResult{Closed: true}, nil
	}

	if !a.Phase.IsBidding() {
		return PlaceResult{}, fmt.Errorf("%w: phase %s", ErrNotBidding, a.Phase)
	}
	if amount <= a.PriceFloor {
		return PlaceResult{}, fmt.Errorf("%w: %d <= floor %d", ErrBidBelowFloor, amount, a.PriceFloor)
	}

	key := recordKey{Auction: addr, Bidder: bidder}
	if rec, ok := b.records[key]; ok && !rec.Cancelled {
		return PlaceResult{}, fmt.Errorf("%w: bidder %s", ErrActiveBid, bidder)
	}

	potID := addressing.Derive(addressing.NamespaceBidderPot, addr[:], bidder[:])
	if !a.BidState.Place(Bid{PotID: potID, Amount: amount}) {
		// Not a strict improvement over the top: success, no effects
		return PlaceResult{}, nil
	}

	b.records[key] = &BidderRecord{
		Bidder:        bidder,
		Auction:       addr,
		LastBidAmount: amount,
		LastBidTime:   now,
	}
	t := now
	a.LastBidTime = &t

	if a.BuyNowPrice != nil && amount >= *a.BuyNowPrice {
		a.closeNow(now)
		a.EndGap = nil
		return PlaceResult{Admitted: true, Closed: true}, nil
	}
	return PlaceResult{Admitted: true}, nil
}

// CancelBid withdraws the bidder's standing. A winning bid cannot be
// cancelled once the auction has closed.
func (b *Book) CancelBid(addr addressing.Address, bidder uuid.UUID, now time.Time) (*BidderRecord, error) {
	a, ok := b.auctions[addr]
	if !ok {
		return nil, ErrAuctionNotFound
	}
	key := recordKey{Auction: addr, Bidder: bidder}
	rec, ok := b.records[key]
	if !ok || rec.Cancelled {
		return nil, fmt.Errorf("%w: bidder %s", ErrNoActiveBid, bidder)
	}

	potID := addressing.Derive(addressing.NamespaceBidderPot, addr[:], bidder[:])
	if a.Ended(now) {
		if _, winning := a.BidState.WinnerRank(potID); winning {
			return nil, ErrWinnerCannotCancel
		}
	}

	a.BidState.Cancel(potID)
	rec.Cancelled = true
	return rec, nil
}

// IsWinner returns the bidder's placement, rank 0 being the top bid
func (b *Book) IsWinner(addr addressing.Address, bidder uuid.UUID) (int, bool) {
	a, ok := b.auctions[addr]
	if !ok {
		return 0, false
	}
	potID := addressing.Derive(addressing.NamespaceBidderPot, addr[:], bidder[:])
	return a.BidState.WinnerRank(potID)
}

// HasEnded evaluates the close condition at the given instant
func (b *Book) HasEnded(addr addressing.Address, now time.Time) (bool, error) {
	a, ok := b.auctions[addr]
	if !ok {
		return false, ErrAuctionNotFound
	}
	return a.Ended(now), nil
}

// Get returns the auction record, if present
func (b *Book) Get(addr addressing.Address) (*Auction, bool) {
	a, ok := b.auctions[addr]
	return a, ok
}

// Record returns the bidder's record, if present
func (b *Book) Record(addr addressing.Address, bidder uuid.UUID) (*BidderRecord, bool) {
	rec, ok := b.records[recordKey{Auction: addr, Bidder: bidder}]
	return rec, ok
}

// Auctions returns every auction, for snapshots and projections
func (b *Book) Auctions() map[addressing.Address]*Auction {
	return b.auctions
}

// Records returns every bidder record, for snapshots and projections
func (b *Book) Records() []*BidderRecord {
	out := make([]*BidderRecord, 0, len(b.records))
	for _, rec := range b.records {
		out = append(out, rec)
	}
	return out
}

// Count returns the number of auctions
func (b *Book) Count() int {
	return len(b.auctions)
}

// RestoreAuction reinstates an auction from a snapshot
func (b *Book) RestoreAuction(a *Auction) {
	b.auctions[a.Address] = a
}

// RestoreRecord reinstates a bidder record from a snapshot
func (b *Book) RestoreRecord(rec *BidderRecord) {
	b.records[recordKey{Auction: rec.Auction, Bidder: rec.Bidder}] = rec
}
