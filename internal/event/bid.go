package event

import (
	"time"

	"github.com/google/uuid"
)

// BidPlaceEvent places a bid on a running auction. Escrow funding for
// the full amount happens atomically with admission; a raise must
// cancel the standing bid first.
type BidPlaceEvent struct {
	BidID   uuid.UUID
	Bidder  uuid.UUID
	Auction string
	Amount  int64

	Sequence  int64
	Timestamp time.Time
}

func (e *BidPlaceEvent) IdempotencyKey() string { return "bid-place-" + e.BidID.String() }
func (e *BidPlaceEvent) EventType() EventType   { return EventTypeBidPlace }
func (e *BidPlaceEvent) AuctionID() *string     { return &e.Auction }
func (e *BidPlaceEvent) SourceSequence() int64  { return e.Sequence }

// BidCancelEvent withdraws a bid and refunds the bidder's pot
type BidCancelEvent struct {
	RequestID uuid.UUID
	Bidder    uuid.UUID
	Auction   string

	Sequence  int64
	Timestamp time.Time
}

func (e *BidCancelEvent) IdempotencyKey() string { return "bid-cancel-" + e.RequestID.String() }
func (e *BidCancelEvent) EventType() EventType   { return EventTypeBidCancel }
func (e *BidCancelEvent) AuctionID() *string     { return &e.Auction }
func (e *BidCancelEvent) SourceSequence() int64  { return e.Sequence }

// BidClaimEvent sweeps a winning bidder's pot into the payment account,
// splitting out the protocol fee and an optional referral cut.
type BidClaimEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string
	Bidder    uuid.UUID

	FeeBasisPoints int64
	Referrer       *uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *BidClaimEvent) IdempotencyKey() string { return "bid-claim-" + e.RequestID.String() }
func (e *BidClaimEvent) EventType() EventType   { return EventTypeBidClaim }
func (e *BidClaimEvent) AuctionID() *string     { return &e.Auction }
func (e *BidClaimEvent) SourceSequence() int64  { return e.Sequence }

// PotCloseEvent reclaims an emptied pot after the auction ends
type PotCloseEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string
	Bidder    uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *PotCloseEvent) IdempotencyKey() string { return "pot-close-" + e.RequestID.String() }
func (e *PotCloseEvent) EventType() EventType   { return EventTypePotClose }
func (e *PotCloseEvent) AuctionID() *string     { return &e.Auction }
func (e *PotCloseEvent) SourceSequence() int64  { return e.Sequence }
