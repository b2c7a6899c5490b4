package core

import (
	"AuctionLedger/internal/auction"
	"AuctionLedger/internal/escrow"
	"AuctionLedger/internal/ledger"
	"AuctionLedger/internal/metadata"
	"AuctionLedger/internal/settlement"
	"AuctionLedger/internal/vault"

	"github.com/google/uuid"
)

// SnapshotState holds the serializable in-memory state for restore.
// This mirrors persistence.SnapshotData but uses typed fields.
type SnapshotState struct {
	Sequence  int64
	StateHash [32]byte

	Balances map[ledger.AccountKey]int64

	Auctions      []*auction.Auction
	BidderRecords []*auction.BidderRecord

	Pots []*escrow.Pot

	Pools            []*vault.Pool
	VaultAuthorities map[uuid.UUID]uuid.UUID

	Descriptors []*metadata.Descriptor

	StoreAuthority *uuid.UUID
	StorePublic    bool
	Whitelist      map[uuid.UUID]bool

	Headers             []*settlement.Header
	Tickets             []*settlement.Ticket
	OriginalAuthorities []settlement.AuthorityRecord

	SequenceState   map[string]int64
	IdempotencyKeys []string
}

// RestoreFromSnapshot restores the core's in-memory state. On warm
// restart the latest snapshot is loaded first, then the event log is
// replayed from the snapshot sequence forward.
func (c *AuctionCore) RestoreFromSnapshot(snap *SnapshotState) {
	c.sequence = snap.Sequence + 1 // Next sequence to assign
	c.hasher.SetPrevHash(snap.StateHash)

	for key, balance := range snap.Balances {
		c.balanceTracker.SetBalance(key, balance)
	}

	for _, a := range snap.Auctions {
		c.book.RestoreAuction(a)
	}
	for _, rec := range snap.BidderRecords {
		c.book.RestoreRecord(rec)
	}

	for _, pot := range snap.Pots {
		c.pots.RestorePot(pot)
	}

	for _, pool := range snap.Pools {
		c.vaults.RestorePool(pool)
	}
	for vaultID, owner := range snap.VaultAuthorities {
		c.vaults.RestoreAuthority(vaultID, owner)
	}

	for _, d := range snap.Descriptors {
		c.metadata.RestoreDescriptor(d)
	}

	c.policy.Restore(snap.StoreAuthority, snap.StorePublic, snap.Whitelist)

	for _, h := range snap.Headers {
		c.coordinator.RestoreHeader(h)
	}
	for _, t := range snap.Tickets {
		c.coordinator.RestoreTicket(t)
	}
	for _, rec := range snap.OriginalAuthorities {
		c.coordinator.RestoreOriginalAuthority(rec)
	}

	for partition, nextSeq := range snap.SequenceState {
		c.sequenceValidator.RestorePartition(partition, nextSeq)
	}
}

// WarmLRU loads recent idempotency keys into the LRU cache, avoiding
// cold-path DB lookups for recently processed events.
func (c *AuctionCore) WarmLRU(keys []string) {
	c.idempotency.lru.WarmFromKeys(keys)
}

// GetSequence returns the current global sequence number.
func (c *AuctionCore) GetSequence() int64 {
	return c.sequence
}

// GetStateHash returns the current state hash (chain tip).
func (c *AuctionCore) GetStateHash() [32]byte {
	return c.hasher.GetPrevHash()
}

// CreateSnapshotState captures the current in-memory state for persistence.
func (c *AuctionCore) CreateSnapshotState() *SnapshotState {
	auctions := make([]*auction.Auction, 0, c.book.Count())
	for _, a := range c.book.Auctions() {
		auctions = append(auctions, a)
	}

	pots := make([]*escrow.Pot, 0, c.pots.Count())
	for _, pot := range c.pots.Pots() {
		pots = append(pots, pot)
	}

	return &SnapshotState{
		Sequence:            c.sequence - 1, // Last processed sequence
		StateHash:           c.hasher.GetPrevHash(),
		Balances:            c.balanceTracker.Snapshot(),
		Auctions:            auctions,
		BidderRecords:       c.book.Records(),
		Pots:                pots,
		Pools:               c.vaults.Pools(),
		VaultAuthorities:    c.vaults.Authorities(),
		Descriptors:         c.metadata.Descriptors(),
		StoreAuthority:      c.policy.Authority(),
		StorePublic:         c.policy.Public(),
		Whitelist:           c.policy.Whitelist(),
		Headers:             c.coordinator.Headers(),
		Tickets:             c.coordinator.Tickets(),
		OriginalAuthorities: c.coordinator.OriginalAuthorities(),
		SequenceState:       c.sequenceValidator.GetAllPartitions(),
		IdempotencyKeys:     c.idempotency.lru.GetAllKeys(),
	}
}
