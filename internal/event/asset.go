package event

import (
	"time"

	"github.com/google/uuid"
)

// VaultPoolAddEvent deposits prize units into a vault pool
type VaultPoolAddEvent struct {
	RequestID uuid.UUID
	Authority uuid.UUID
	Vault     uuid.UUID
	PoolIndex uint8

	// Metadata identifies the asset held by the pool
	Metadata uuid.UUID

	Amount int64

	Sequence  int64
	Timestamp time.Time
}

func (e *VaultPoolAddEvent) IdempotencyKey() string { return "vault-add-" + e.RequestID.String() }
func (e *VaultPoolAddEvent) EventType() EventType   { return EventTypeVaultPoolAdd }
func (e *VaultPoolAddEvent) AuctionID() *string     { return nil }
func (e *VaultPoolAddEvent) SourceSequence() int64  { return e.Sequence }

// MetadataRegisterEvent registers an asset descriptor
type MetadataRegisterEvent struct {
	RequestID uuid.UUID

	// Authority is the descriptor's update authority
	Authority uuid.UUID
	Metadata  uuid.UUID
	Creator   uuid.UUID
	Name      string

	// MaxSupply caps master-record mints; nil is unlimited
	MaxSupply     *int64
	CurrentSupply int64

	Sequence  int64
	Timestamp time.Time
}

func (e *MetadataRegisterEvent) IdempotencyKey() string {
	return "metadata-register-" + e.RequestID.String()
}
func (e *MetadataRegisterEvent) EventType() EventType  { return EventTypeMetadataRegister }
func (e *MetadataRegisterEvent) AuctionID() *string    { return nil }
func (e *MetadataRegisterEvent) SourceSequence() int64 { return e.Sequence }
