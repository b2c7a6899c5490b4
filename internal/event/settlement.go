package event

import (
	"time"

	"github.com/google/uuid"
)

// PrizeConfigSpec declares one prize slot in a settlement header
type PrizeConfigSpec struct {
	// PrizeIndex is the vault pool backing this prize
	PrizeIndex uint8

	// Quantity requested per winner
	Quantity int64

	// Kind is the redemption class (see settlement.PrizeKind)
	Kind int32
}

// SettlementInitEvent creates the settlement header binding an auction
// to its vault and prize layout
type SettlementInitEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string
	Vault     uuid.UUID

	// Open-distribution settings; pool is nil when no open distribution
	// is attached
	OpenWinnerConstraint    int32
	OpenNonWinnerConstraint int32
	OpenDistributionPool    *uint8
	OpenDistributionPrice   *int64

	PrizeConfigs []PrizeConfigSpec

	Sequence  int64
	Timestamp time.Time
}

func (e *SettlementInitEvent) IdempotencyKey() string {
	return "settlement-init-" + e.RequestID.String()
}
func (e *SettlementInitEvent) EventType() EventType  { return EventTypeSettlementInit }
func (e *SettlementInitEvent) AuctionID() *string    { return &e.Auction }
func (e *SettlementInitEvent) SourceSequence() int64 { return e.Sequence }

// PrizeValidateEvent proves one prize slot's backing custody and supply
type PrizeValidateEvent struct {
	RequestID  uuid.UUID
	Authority  uuid.UUID
	Auction    string
	PrizeIndex uint8

	// Metadata is the asset descriptor backing the pool
	Metadata uuid.UUID

	// Creator attested on the descriptor; must be whitelisted
	Creator uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *PrizeValidateEvent) IdempotencyKey() string {
	return "prize-validate-" + e.RequestID.String()
}
func (e *PrizeValidateEvent) EventType() EventType  { return EventTypePrizeValidate }
func (e *PrizeValidateEvent) AuctionID() *string    { return &e.Auction }
func (e *PrizeValidateEvent) SourceSequence() int64 { return e.Sequence }

// OpenDistributionValidateEvent proves the open-distribution pool
type OpenDistributionValidateEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Auction   string
	Metadata  uuid.UUID
	Creator   uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *OpenDistributionValidateEvent) IdempotencyKey() string {
	return "open-validate-" + e.RequestID.String()
}
func (e *OpenDistributionValidateEvent) EventType() EventType {
	return EventTypeOpenDistributionValidate
}
func (e *OpenDistributionValidateEvent) AuctionID() *string    { return &e.Auction }
func (e *OpenDistributionValidateEvent) SourceSequence() int64 { return e.Sequence }

// PrizeRedeemEvent redeems a direct or limited-edition prize for a winner
type PrizeRedeemEvent struct {
	RequestID  uuid.UUID
	Bidder     uuid.UUID
	Auction    string
	PrizeIndex uint8

	Sequence  int64
	Timestamp time.Time
}

func (e *PrizeRedeemEvent) IdempotencyKey() string { return "prize-redeem-" + e.RequestID.String() }
func (e *PrizeRedeemEvent) EventType() EventType   { return EventTypePrizeRedeem }
func (e *PrizeRedeemEvent) AuctionID() *string     { return &e.Auction }
func (e *PrizeRedeemEvent) SourceSequence() int64  { return e.Sequence }

// MasterRedeemEvent transfers a master record's authority to the winner
type MasterRedeemEvent struct {
	RequestID  uuid.UUID
	Bidder     uuid.UUID
	Auction    string
	PrizeIndex uint8

	// NewAuthority receives control of the master record
	NewAuthority uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *MasterRedeemEvent) IdempotencyKey() string { return "master-redeem-" + e.RequestID.String() }
func (e *MasterRedeemEvent) EventType() EventType   { return EventTypeMasterRedeem }
func (e *MasterRedeemEvent) AuctionID() *string     { return &e.Auction }
func (e *MasterRedeemEvent) SourceSequence() int64  { return e.Sequence }

// OpenDistributionRedeemEvent redeems one open-distribution copy,
// charging the fixed price when one is set
type OpenDistributionRedeemEvent struct {
	RequestID uuid.UUID
	Bidder    uuid.UUID
	Auction   string

	Sequence  int64
	Timestamp time.Time
}

func (e *OpenDistributionRedeemEvent) IdempotencyKey() string {
	return "open-redeem-" + e.RequestID.String()
}
func (e *OpenDistributionRedeemEvent) EventType() EventType  { return EventTypeOpenDistributionRedeem }
func (e *OpenDistributionRedeemEvent) AuctionID() *string    { return &e.Auction }
func (e *OpenDistributionRedeemEvent) SourceSequence() int64 { return e.Sequence }

// PaymentAccountEmptyEvent drains the accumulated payment balance to the
// authority once disbursement is complete
type PaymentAccountEmptyEvent struct {
	RequestID   uuid.UUID
	Authority   uuid.UUID
	Auction     string
	Destination uuid.UUID

	Sequence  int64
	Timestamp time.Time
}

func (e *PaymentAccountEmptyEvent) IdempotencyKey() string {
	return "payment-empty-" + e.RequestID.String()
}
func (e *PaymentAccountEmptyEvent) EventType() EventType  { return EventTypePaymentAccountEmpty }
func (e *PaymentAccountEmptyEvent) AuctionID() *string    { return &e.Auction }
func (e *PaymentAccountEmptyEvent) SourceSequence() int64 { return e.Sequence }
