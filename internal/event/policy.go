package event

import (
	"time"

	"github.com/google/uuid"
)

// CreatorWhitelistSetEvent activates or deactivates a creator on the store
type CreatorWhitelistSetEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Creator   uuid.UUID
	Activated bool

	Sequence  int64
	Timestamp time.Time
}

func (e *CreatorWhitelistSetEvent) IdempotencyKey() string {
	return "whitelist-set-" + e.RequestID.String()
}
func (e *CreatorWhitelistSetEvent) EventType() EventType  { return EventTypeCreatorWhitelistSet }
func (e *CreatorWhitelistSetEvent) AuctionID() *string    { return nil }
func (e *CreatorWhitelistSetEvent) SourceSequence() int64 { return e.Sequence }

// StoreSetEvent configures the store policy (public vs. curated)
type StoreSetEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Public    bool

	Sequence  int64
	Timestamp time.Time
}

func (e *StoreSetEvent) IdempotencyKey() string { return "store-set-" + e.RequestID.String() }
func (e *StoreSetEvent) EventType() EventType   { return EventTypeStoreSet }
func (e *StoreSetEvent) AuctionID() *string     { return nil }
func (e *StoreSetEvent) SourceSequence() int64  { return e.Sequence }
