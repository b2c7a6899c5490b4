package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"AuctionLedger/internal/auction"
	"AuctionLedger/internal/core"
	"AuctionLedger/internal/escrow"
	"AuctionLedger/internal/ledger"
	"AuctionLedger/internal/metadata"
	"AuctionLedger/internal/settlement"
	"AuctionLedger/internal/vault"
)

// SnapshotManager handles creating and loading state snapshots for
// recovery. Snapshots capture balances, auctions, pots, vault pools,
// descriptors, store policy, settlement state, sequence counters, and
// the last state hash.
type SnapshotManager struct {
	db *sql.DB
}

// SnapshotData is the JSON-serializable form of the core's in-memory
// state at a point in time.
type SnapshotData struct {
	Sequence  int64  `json:"sequence"`
	StateHash []byte `json:"state_hash"`

	Balances []BalanceRow `json:"balances"`

	Auctions      []*auction.Auction      `json:"auctions"`
	BidderRecords []*auction.BidderRecord `json:"bidder_records"`

	Pots []*escrow.Pot `json:"pots"`

	Pools            []*vault.Pool           `json:"pools"`
	VaultAuthorities map[uuid.UUID]uuid.UUID `json:"vault_authorities"`

	Descriptors []*metadata.Descriptor `json:"descriptors"`

	StoreAuthority *uuid.UUID         `json:"store_authority,omitempty"`
	StorePublic    bool               `json:"store_public"`
	Whitelist      map[uuid.UUID]bool `json:"whitelist"`

	Headers             []*settlement.Header         `json:"headers"`
	Tickets             []*settlement.Ticket         `json:"tickets"`
	OriginalAuthorities []settlement.AuthorityRecord `json:"original_authorities"`

	SequenceState   map[string]int64 `json:"sequence_state"`   // partition -> next expected seq
	IdempotencyKeys []string         `json:"idempotency_keys"` // Recent keys for LRU warming

	CreatedAt time.Time `json:"created_at"`
}

// BalanceRow is a serializable account balance. AccountKey is a struct
// and cannot key a JSON object, so balances flatten to rows.
type BalanceRow struct {
	Scope    string   `json:"scope"`
	EntityID [32]byte `json:"entity_id"`
	SubType  string   `json:"sub_type"`
	AssetID  string   `json:"asset_id"`
	Balance  int64    `json:"balance"`
}

// FromCoreState converts the core's typed snapshot into the
// serializable form.
func FromCoreState(state *core.SnapshotState) *SnapshotData {
	balances := make([]BalanceRow, 0, len(state.Balances))
	for key, bal := range state.Balances {
		balances = append(balances, BalanceRow{
			Scope:    key.Scope,
			EntityID: key.EntityID,
			SubType:  key.SubType,
			AssetID:  key.AssetID,
			Balance:  bal,
		})
	}

	return &SnapshotData{
		Sequence:            state.Sequence,
		StateHash:           state.StateHash[:],
		Balances:            balances,
		Auctions:            state.Auctions,
		BidderRecords:       state.BidderRecords,
		Pots:                state.Pots,
		Pools:               state.Pools,
		VaultAuthorities:    state.VaultAuthorities,
		Descriptors:         state.Descriptors,
		StoreAuthority:      state.StoreAuthority,
		StorePublic:         state.StorePublic,
		Whitelist:           state.Whitelist,
		Headers:             state.Headers,
		Tickets:             state.Tickets,
		OriginalAuthorities: state.OriginalAuthorities,
		SequenceState:       state.SequenceState,
		IdempotencyKeys:     state.IdempotencyKeys,
		CreatedAt:           time.Now().UTC(),
	}
}

// ToCoreState converts a loaded snapshot back into the core's typed
// form for RestoreFromSnapshot.
func (sd *SnapshotData) ToCoreState() *core.SnapshotState {
	balances := make(map[ledger.AccountKey]int64, len(sd.Balances))
	for _, row := range sd.Balances {
		key := ledger.AccountKey{
			Scope:    row.Scope,
			EntityID: row.EntityID,
			SubType:  row.SubType,
			AssetID:  row.AssetID,
		}
		balances[key] = row.Balance
	}

	var stateHash [32]byte
	copy(stateHash[:], sd.StateHash)

	return &core.SnapshotState{
		Sequence:            sd.Sequence,
		StateHash:           stateHash,
		Balances:            balances,
		Auctions:            sd.Auctions,
		BidderRecords:       sd.BidderRecords,
		Pots:                sd.Pots,
		Pools:               sd.Pools,
		VaultAuthorities:    sd.VaultAuthorities,
		Descriptors:         sd.Descriptors,
		StoreAuthority:      sd.StoreAuthority,
		StorePublic:         sd.StorePublic,
		Whitelist:           sd.Whitelist,
		Headers:             sd.Headers,
		Tickets:             sd.Tickets,
		OriginalAuthorities: sd.OriginalAuthorities,
		SequenceState:       sd.SequenceState,
		IdempotencyKeys:     sd.IdempotencyKeys,
	}
}

func NewSnapshotManager(db *sql.DB) *SnapshotManager {
	return &SnapshotManager{db: db}
}

// SaveSnapshot persists a snapshot to Postgres. Snapshots are taken
// periodically and verified by replaying events from the snapshot
// sequence forward before they are trusted for restarts.
func (sm *SnapshotManager) SaveSnapshot(ctx context.Context, snap *SnapshotData) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	snapshotID := uuid.New()
	sizeBytes := len(data)
	formatVersion := int32(1) // v1: JSON-encoded SnapshotData

	_, err = sm.db.ExecContext(ctx, `
		INSERT INTO event_log.snapshots
			(snapshot_id, sequence, data, state_hash, format_version, size_bytes, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		ON CONFLICT (sequence) DO UPDATE SET data = $3, state_hash = $4, size_bytes = $6
	`, snapshotID, snap.Sequence, data, snap.StateHash, formatVersion, sizeBytes, snap.CreatedAt)

	return err
}

// LoadLatestSnapshot loads the most recent verified snapshot. On warm
// restart, load the latest snapshot then replay events from
// snapshot.sequence+1.
func (sm *SnapshotManager) LoadLatestSnapshot(ctx context.Context) (*SnapshotData, error) {
	row := sm.db.QueryRowContext(ctx, `
		SELECT data FROM event_log.snapshots
		WHERE verified = TRUE
		ORDER BY sequence DESC
		LIMIT 1
	`)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No snapshot — cold start
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap SnapshotData
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// MarkVerified marks a snapshot as verified after integrity check.
func (sm *SnapshotManager) MarkVerified(ctx context.Context, sequence int64) error {
	_, err := sm.db.ExecContext(ctx, `
		UPDATE event_log.snapshots SET verified = TRUE WHERE sequence = $1
	`, sequence)
	return err
}

// LoadEventsFrom loads events from a given sequence for replay. Used
// for warm restart (replay from snapshot) and cold restart (replay all).
func (sm *SnapshotManager) LoadEventsFrom(ctx context.Context, fromSequence int64, limit int) ([]EventRow, error) {
	rows, err := sm.db.QueryContext(ctx, `
		SELECT sequence, event_type, idempotency_key, auction_id, payload,
		       state_hash, prev_hash, timestamp, source_sequence
		FROM event_log.events
		WHERE sequence >= $1
		ORDER BY sequence ASC
		LIMIT $2
	`, fromSequence, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(
			&e.Sequence, &e.EventType, &e.IdempotencyKey, &e.AuctionID,
			&e.Payload, &e.StateHash, &e.PrevHash, &e.Timestamp, &e.SourceSequence,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// GetLatestSequence returns the highest sequence in the event log.
func (sm *SnapshotManager) GetLatestSequence(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := sm.db.QueryRowContext(ctx, `
		SELECT MAX(sequence) FROM event_log.events
	`).Scan(&seq)
	if err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil // Empty event log
	}
	return seq.Int64, nil
}
