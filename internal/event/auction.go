package event

import (
	"time"

	"github.com/google/uuid"
)

// AuctionCreateEvent provisions a new auction keyed by its resource.
// The auction address is derived from the resource by the core, so the
// payload carries the resource rather than an address.
type AuctionCreateEvent struct {
	RequestID       uuid.UUID
	Authority       uuid.UUID
	Resource        uuid.UUID
	SettlementAsset string

	// WinnerCap bounds the ladder; zero means open participation
	WinnerCap int64

	// HardEndSecs is the duration from start to the hard deadline, if any
	HardEndSecs *int64

	// EndGapSecs is the anti-snipe window after the last bid, if any
	EndGapSecs *int64

	PriceFloor  int64
	BuyNowPrice *int64

	Sequence  int64
	Timestamp time.Time
}

func (e *AuctionCreateEvent) IdempotencyKey() string { return "auction-create-" + e.RequestID.String() }
func (e *AuctionCreateEvent) EventType() EventType   { return EventTypeAuctionCreate }
func (e *AuctionCreateEvent) AuctionID() *string     { return nil }
func (e *AuctionCreateEvent) SourceSequence() int64  { return e.Sequence }

// AuctionStartEvent opens bidding and pins the hard deadline
type AuctionStartEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string

	Sequence  int64
	Timestamp time.Time
}

func (e *AuctionStartEvent) IdempotencyKey() string { return "auction-start-" + e.RequestID.String() }
func (e *AuctionStartEvent) EventType() EventType   { return EventTypeAuctionStart }
func (e *AuctionStartEvent) AuctionID() *string     { return &e.Auction }
func (e *AuctionStartEvent) SourceSequence() int64  { return e.Sequence }

// AuctionEndEvent force-ends an auction by authority action
type AuctionEndEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string

	Sequence  int64
	Timestamp time.Time
}

func (e *AuctionEndEvent) IdempotencyKey() string { return "auction-end-" + e.RequestID.String() }
func (e *AuctionEndEvent) EventType() EventType   { return EventTypeAuctionEnd }
func (e *AuctionEndEvent) AuctionID() *string     { return &e.Auction }
func (e *AuctionEndEvent) SourceSequence() int64  { return e.Sequence }
