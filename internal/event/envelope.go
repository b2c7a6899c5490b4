package event

import (
	"time"
)

// EventType discriminator for event payloads
type EventType int32

const (
	EventTypeUnknown EventType = iota
	EventTypeAuctionCreate
	EventTypeAuctionStart
	EventTypeAuctionEnd
	EventTypeBidPlace
	EventTypeBidCancel
	EventTypeBidClaim
	EventTypePotClose
	EventTypeSettlementInit
	EventTypePrizeValidate
	EventTypeOpenDistributionValidate
	EventTypePrizeRedeem
	EventTypeMasterRedeem
	EventTypeOpenDistributionRedeem
	EventTypePaymentAccountEmpty
	EventTypeCreatorWhitelistSet
	EventTypeStoreSet
	EventTypeVaultPoolAdd
	EventTypeMetadataRegister
)

// EventEnvelope wraps every event in the log
type EventEnvelope struct {
	// Global monotonic sequence assigned by core
	Sequence int64

	// Stable idempotency key from upstream
	IdempotencyKey string

	// Event type discriminator
	EventType EventType

	// Auction context (nullable for store/policy events)
	AuctionID *string

	// Versioned input timestamp (NOT wall-clock)
	Timestamp time.Time

	// Upstream sequence for ordering validation
	SourceSequence int64

	// JSON-encoded event-specific data
	Payload []byte

	// SHA-256 of state AFTER applying this event
	StateHash [32]byte

	// Previous event's state hash (chain integrity)
	PrevHash [32]byte
}

// Event is the interface all event payloads must implement
type Event interface {
	// IdempotencyKey returns the stable dedup key
	IdempotencyKey() string

	// EventType returns the discriminator
	EventType() EventType

	// AuctionID returns the auction context (nil for store-wide events)
	AuctionID() *string

	// SourceSequence returns upstream ordering key
	SourceSequence() int64
}

func (et EventType) String() string {
	switch et {
	case EventTypeAuctionCreate:
		return "AuctionCreate"
	case EventTypeAuctionStart:
		return "AuctionStart"
	case EventTypeAuctionEnd:
		return "AuctionEnd"
	case EventTypeBidPlace:
		return "BidPlace"
	case EventTypeBidCancel:
		return "BidCancel"
	case EventTypeBidClaim:
		return "BidClaim"
	case EventTypePotClose:
		return "PotClose"
	case EventTypeSettlementInit:
		return "SettlementInit"
	case EventTypePrizeValidate:
		return "PrizeValidate"
	case EventTypeOpenDistributionValidate:
		return "OpenDistributionValidate"
	case EventTypePrizeRedeem:
		return "PrizeRedeem"
	case EventTypeMasterRedeem:
		return "MasterRedeem"
	case EventTypeOpenDistributionRedeem:
		return "OpenDistributionRedeem"
	case EventTypePaymentAccountEmpty:
		return "PaymentAccountEmpty"
	case EventTypeCreatorWhitelistSet:
		return "CreatorWhitelistSet"
	case EventTypeStoreSet:
		return "StoreSet"
	case EventTypeVaultPoolAdd:
		return "VaultPoolAdd"
	case EventTypeMetadataRegister:
		return "MetadataRegister"
	default:
		return "Unknown"
	}
}

// EventTypeFromString maps a stored type name back to its
// discriminator, for event-log replay.
func EventTypeFromString(s string) EventType {
	switch s {
	case "AuctionCreate":
		return EventTypeAuctionCreate
	case "AuctionStart":
		return EventTypeAuctionStart
	case "AuctionEnd":
		return EventTypeAuctionEnd
	case "BidPlace":
		return EventTypeBidPlace
	case "BidCancel":
		return EventTypeBidCancel
	case "BidClaim":
		return EventTypeBidClaim
	case "PotClose":
		return EventTypePotClose
	case "SettlementInit":
		return EventTypeSettlementInit
	case "PrizeValidate":
		return EventTypePrizeValidate
	case "OpenDistributionValidate":
		return EventTypeOpenDistributionValidate
	case "PrizeRedeem":
		return EventTypePrizeRedeem
	case "MasterRedeem":
		return EventTypeMasterRedeem
	case "OpenDistributionRedeem":
		return EventTypeOpenDistributionRedeem
	case "PaymentAccountEmpty":
		return EventTypePaymentAccountEmpty
	case "CreatorWhitelistSet":
		return EventTypeCreatorWhitelistSet
	case "StoreSet":
		return EventTypeStoreSet
	case "VaultPoolAdd":
		return EventTypeVaultPoolAdd
	case "MetadataRegister":
		return EventTypeMetadataRegister
	default:
		return EventTypeUnknown
	}
}
