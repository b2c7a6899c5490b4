package ingestion

import (
	"AuctionLedger/internal/event"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GRPCIngestService provides admin/manual event injection via gRPC.
// gRPC ingest is for operator actions and manual event injection, not
// for high-throughput ingestion (use NATS for that).
type GRPCIngestService struct {
	eventChan chan<- event.Event
}

func NewGRPCIngestService(eventChan chan<- event.Event) *GRPCIngestService {
	return &GRPCIngestService{eventChan: eventChan}
}

// InjectAuctionEnd manually force-ends an auction.
func (s *GRPCIngestService) InjectAuctionEnd(
	ctx context.Context,
	authority uuid.UUID,
	auctionID string,
) error {
	if auctionID == "" {
		return fmt.Errorf("auction id required")
	}

	evt := &event.AuctionEndEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Auction:   auctionID,
		Sequence:  time.Now().UnixMicro(), // Admin-injected: use timestamp as sequence
		Timestamp: time.Now(),
	}

	select {
	case s.eventChan <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InjectStoreSet manually configures the store policy.
func (s *GRPCIngestService) InjectStoreSet(
	ctx context.Context,
	authority uuid.UUID,
	public bool,
) error {
	evt := &event.StoreSetEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Public:    public,
		Sequence:  time.Now().UnixMicro(),
		Timestamp: time.Now(),
	}

	select {
	case s.eventChan <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InjectWhitelistSet manually activates or deactivates a creator.
func (s *GRPCIngestService) InjectWhitelistSet(
	ctx context.Context,
	authority, creator uuid.UUID,
	activated bool,
) error {
	evt := &event.CreatorWhitelistSetEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Creator:   creator,
		Activated: activated,
		Sequence:  time.Now().UnixMicro(),
		Timestamp: time.Now(),
	}

	select {
	case s.eventChan <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InjectVaultPoolAdd manually funds a vault pool.
func (s *GRPCIngestService) InjectVaultPoolAdd(
	ctx context.Context,
	authority, vaultID, metadataID uuid.UUID,
	poolIndex uint8,
	amount int64,
) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	evt := &event.VaultPoolAddEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Vault:     vaultID,
		PoolIndex: poolIndex,
		Metadata:  metadataID,
		Amount:    amount,
		Sequence:  time.Now().UnixMicro(),
		Timestamp: time.Now(),
	}

	select {
	case s.eventChan <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InjectMetadataRegister manually registers an asset descriptor.
func (s *GRPCIngestService) InjectMetadataRegister(
	ctx context.Context,
	authority, metadataID, creator uuid.UUID,
	name string,
	maxSupply *int64,
) error {
	evt := &event.MetadataRegisterEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Metadata:  metadataID,
		Creator:   creator,
		Name:      name,
		MaxSupply: maxSupply,
		Sequence:  time.Now().UnixMicro(),
		Timestamp: time.Now(),
	}

	select {
	case s.eventChan <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
