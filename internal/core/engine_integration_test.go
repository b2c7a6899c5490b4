package core_test

import (
	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/auction"
	"AuctionLedger/internal/core"
	"AuctionLedger/internal/event"
	"AuctionLedger/internal/ledger"
	"AuctionLedger/internal/settlement"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// --- Test helpers ---

// testCore wraps an AuctionCore with buffered channels and per-partition
// source sequence counters so scenarios read top to bottom.
type testCore struct {
	c       *core.AuctionCore
	persist chan core.CoreOutput
	proj    chan core.CoreOutput
	seqs    map[string]int64
}

func newTestCore() *testCore {
	persistChan := make(chan core.CoreOutput, 1024)
	projChan := make(chan core.CoreOutput, 1024)
	return &testCore{
		c:       core.NewAuctionCore(0, persistChan, projChan, nil, nil),
		persist: persistChan,
		proj:    projChan,
		seqs:    make(map[string]int64),
	}
}

func (tc *testCore) next(partition string) int64 {
	s := tc.seqs[partition]
	tc.seqs[partition] = s + 1
	return s
}

func (tc *testCore) nextGlobal() int64 { return tc.next("global") }

func (tc *testCore) nextFor(auctionHex string) int64 {
	return tc.next("auction:" + auctionHex)
}

func drainOutputs(ch chan core.CoreOutput) []core.CoreOutput {
	var outputs []core.CoreOutput
	for {
		select {
		case o := <-ch:
			outputs = append(outputs, o)
		default:
			return outputs
		}
	}
}

func ts(offset int64) time.Time {
	return time.UnixMicro(1_000_000 + offset*1000)
}

func ptr[T any](v T) *T { return &v }

func auctionAddr(resource uuid.UUID) addressing.Address {
	return addressing.Derive(addressing.NamespaceAuction, resource[:])
}

func (tc *testCore) mustProcess(t *testing.T, evt event.Event) {
	t.Helper()
	if err := tc.c.ProcessEvent(evt); err != nil {
		t.Fatalf("ProcessEvent(%s) failed: %v", evt.EventType(), err)
	}
}

// createAuction provisions and starts a capacity-capped auction, returning
// its address hex. Timestamps start at ts(0).
func (tc *testCore) createAuction(t *testing.T, authority uuid.UUID, cap int64) (addressing.Address, string) {
	t.Helper()
	resource := uuid.New()
	tc.mustProcess(t, &event.AuctionCreateEvent{
		RequestID:       uuid.New(),
		Authority:       authority,
		Resource:        resource,
		SettlementAsset: "USDC",
		WinnerCap:       cap,
		Sequence:        tc.nextGlobal(),
		Timestamp:       ts(0),
	})
	addr := auctionAddr(resource)
	hex := addr.String()
	tc.mustProcess(t, &event.AuctionStartEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Auction:   hex,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(0),
	})
	return addr, hex
}

func (tc *testCore) placeBid(t *testing.T, hex string, bidder uuid.UUID, amount int64, at int64) {
	t.Helper()
	tc.mustProcess(t, &event.BidPlaceEvent{
		BidID:     uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Amount:    amount,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(at),
	})
}

// ============================================================================
// Test: Auction Lifecycle
// ============================================================================

func TestAuctionCreate_EmitsEnvelope(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()

	tc.mustProcess(t, &event.AuctionCreateEvent{
		RequestID:       uuid.New(),
		Authority:       authority,
		Resource:        uuid.New(),
		SettlementAsset: "USDC",
		WinnerCap:       3,
		Sequence:        tc.nextGlobal(),
		Timestamp:       ts(0),
	})

	outputs := drainOutputs(tc.persist)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	env := outputs[0].Envelope
	if env.EventType != event.EventTypeAuctionCreate {
		t.Errorf("expected AuctionCreate envelope, got %s", env.EventType)
	}
	if env.AuctionID != nil {
		t.Errorf("create is globally partitioned, got auction id %q", *env.AuctionID)
	}
	if outputs[0].Batch != nil {
		t.Errorf("create should produce no journals")
	}
	if tc.c.Book().Count() != 1 {
		t.Errorf("expected 1 auction in book, got %d", tc.c.Book().Count())
	}
}

func TestAuctionCreate_Replay_SameAddress(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	resource := uuid.New()

	for i := 0; i < 2; i++ {
		tc.mustProcess(t, &event.AuctionCreateEvent{
			RequestID:       uuid.New(), // distinct requests, same resource
			Authority:       authority,
			Resource:        resource,
			SettlementAsset: "USDC",
			WinnerCap:       1,
			Sequence:        tc.nextGlobal(),
			Timestamp:       ts(int64(i)),
		})
	}

	if tc.c.Book().Count() != 1 {
		t.Errorf("re-create of the same resource must not mint a second auction, got %d", tc.c.Book().Count())
	}
}

// ============================================================================
// Test: Bid Escrow
// ============================================================================

func TestBidPlace_EscrowsFullAmount(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	bidder := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)
	drainOutputs(tc.persist)

	tc.placeBid(t, hex, bidder, 1000, 1)

	outputs := drainOutputs(tc.persist)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	batch := outputs[0].Batch
	if batch == nil || len(batch.Journals) != 1 {
		t.Fatalf("expected 1 escrow journal, got %+v", batch)
	}
	j := batch.Journals[0]
	if j.Amount != 1000 || j.Reason != "bid_escrow" {
		t.Errorf("expected bid_escrow of 1000, got %s %d", j.Reason, j.Amount)
	}

	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 1000 {
		t.Errorf("pot balance = %d, want 1000", got)
	}
}

func TestBidPlace_RaiseWithoutCancelRejected(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	bidder := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)

	tc.placeBid(t, hex, bidder, 1000, 1)
	drainOutputs(tc.persist)

	err := tc.c.ProcessEvent(&event.BidPlaceEvent{
		BidID:     uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Amount:    2000,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(2),
	})
	if !errors.Is(err, auction.ErrActiveBid) {
		t.Fatalf("expected ErrActiveBid, got %v", err)
	}
	if got := len(drainOutputs(tc.persist)); got != 0 {
		t.Errorf("rejected bid must not emit outputs, got %d", got)
	}
	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 1000 {
		t.Errorf("pot balance = %d, want 1000", got)
	}
}

func TestBidPlace_CancelThenRaise_ReEscrowsFullAmount(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	bidder := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)

	tc.placeBid(t, hex, bidder, 1000, 1)
	tc.mustProcess(t, &event.BidCancelEvent{
		RequestID: uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(2),
	})
	drainOutputs(tc.persist)

	// The refund emptied the pot, so the raise escrows in full
	tc.placeBid(t, hex, bidder, 2000, 3)

	outputs := drainOutputs(tc.persist)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	j := outputs[0].Batch.Journals[0]
	if j.Amount != 2000 || j.Reason != "bid_escrow" {
		t.Errorf("expected bid_escrow of 2000, got %s %d", j.Reason, j.Amount)
	}
	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 2000 {
		t.Errorf("pot balance = %d, want 2000", got)
	}
}

func TestBidPlace_NonImproving_NoJournals(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)

	tc.placeBid(t, hex, uuid.New(), 1000, 1)
	drainOutputs(tc.persist)

	loser := uuid.New()
	tc.placeBid(t, hex, loser, 500, 2)

	// The event is still sequenced and enveloped, but no funds move
	outputs := drainOutputs(tc.persist)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	if outputs[0].Batch != nil {
		t.Errorf("non-improving bid must not move funds")
	}
	pot := ledger.NewPotAccountKey(addr, loser, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 0 {
		t.Errorf("loser pot balance = %d, want 0", got)
	}
}

func TestBidCancel_RefundsPot(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	bidder := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)
	tc.placeBid(t, hex, bidder, 1000, 1)
	drainOutputs(tc.persist)

	tc.mustProcess(t, &event.BidCancelEvent{
		RequestID: uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(2),
	})

	outputs := drainOutputs(tc.persist)
	if len(outputs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(outputs))
	}
	j := outputs[0].Batch.Journals[0]
	if j.Amount != 1000 || j.Reason != "bid_refund" {
		t.Errorf("expected bid_refund of 1000, got %s %d", j.Reason, j.Amount)
	}
	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 0 {
		t.Errorf("pot balance after refund = %d, want 0", got)
	}
}

func TestBidPlace_BuyNow_ClosesAuction(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	resource := uuid.New()

	tc.mustProcess(t, &event.AuctionCreateEvent{
		RequestID:       uuid.New(),
		Authority:       authority,
		Resource:        resource,
		SettlementAsset: "USDC",
		WinnerCap:       3,
		BuyNowPrice:     ptr(int64(5000)),
		Sequence:        tc.nextGlobal(),
		Timestamp:       ts(0),
	})
	addr := auctionAddr(resource)
	hex := addr.String()
	tc.mustProcess(t, &event.AuctionStartEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Auction:   hex,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(0),
	})

	tc.placeBid(t, hex, uuid.New(), 5000, 1)

	ended, err := tc.c.Book().HasEnded(addr, ts(1))
	if err != nil {
		t.Fatalf("HasEnded: %v", err)
	}
	if !ended {
		t.Error("buy-now bid should close the auction immediately")
	}
}

// ============================================================================
// Test: Idempotency
// ============================================================================

func TestIdempotency_DuplicateBid_Ignored(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)
	drainOutputs(tc.persist)

	bidder := uuid.New()
	bid := &event.BidPlaceEvent{
		BidID:     uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Amount:    1000,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(1),
	}

	tc.mustProcess(t, bid)
	if got := len(drainOutputs(tc.persist)); got != 1 {
		t.Fatalf("expected 1 output on first process, got %d", got)
	}

	// Same BidID redelivered — silently ignored, no double escrow
	tc.mustProcess(t, bid)
	if got := len(drainOutputs(tc.persist)); got != 0 {
		t.Errorf("expected 0 outputs for duplicate, got %d", got)
	}
	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := tc.c.Balances().Balance(pot); got != 1000 {
		t.Errorf("pot balance = %d, want 1000 (no double escrow)", got)
	}
}

// ============================================================================
// Test: Sequence Validation
// ============================================================================

func TestSequenceValidation_GapDetected(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	_, hex := tc.createAuction(t, authority, 3)
	drainOutputs(tc.persist)

	// Partition cursor is at 1 after the start event; skip to 3
	err := tc.c.ProcessEvent(&event.BidPlaceEvent{
		BidID:     uuid.New(),
		Bidder:    uuid.New(),
		Auction:   hex,
		Amount:    1000,
		Sequence:  3,
		Timestamp: ts(1),
	})
	if err == nil {
		t.Fatal("expected sequence gap error, got nil")
	}
}

func TestSequenceValidation_AuctionsArePartitionedIndependently(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	_, hexA := tc.createAuction(t, authority, 3)
	_, hexB := tc.createAuction(t, authority, 3)
	drainOutputs(tc.persist)

	// Both auctions accept their own seq 1 without interfering
	tc.placeBid(t, hexA, uuid.New(), 1000, 1)
	tc.placeBid(t, hexB, uuid.New(), 2000, 1)

	if got := len(drainOutputs(tc.persist)); got != 2 {
		t.Errorf("expected 2 outputs, got %d", got)
	}
}

// ============================================================================
// Test: State Hash Chain
// ============================================================================

func TestStateHashChain_Deterministic(t *testing.T) {
	authority := uuid.New()
	bidder := uuid.New()
	resource := uuid.New()
	requestIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	processEvents := func() [][32]byte {
		tc := newTestCore()
		hex := auctionAddr(resource).String()

		tc.mustProcess(t, &event.AuctionCreateEvent{
			RequestID:       requestIDs[0],
			Authority:       authority,
			Resource:        resource,
			SettlementAsset: "USDC",
			WinnerCap:       3,
			Sequence:        tc.nextGlobal(),
			Timestamp:       ts(0),
		})
		tc.mustProcess(t, &event.AuctionStartEvent{
			RequestID: requestIDs[1],
			Authority: authority,
			Auction:   hex,
			Sequence:  tc.nextFor(hex),
			Timestamp: ts(0),
		})
		tc.mustProcess(t, &event.BidPlaceEvent{
			BidID:     requestIDs[2],
			Bidder:    bidder,
			Auction:   hex,
			Amount:    1000,
			Sequence:  tc.nextFor(hex),
			Timestamp: ts(1),
		})

		outputs := drainOutputs(tc.persist)
		hashes := make([][32]byte, len(outputs))
		for i, o := range outputs {
			hashes[i] = o.Envelope.StateHash
		}
		return hashes
	}

	hashes1 := processEvents()
	hashes2 := processEvents()

	if len(hashes1) != len(hashes2) {
		t.Fatalf("different number of outputs: %d vs %d", len(hashes1), len(hashes2))
	}
	for i := range hashes1 {
		if hashes1[i] != hashes2[i] {
			t.Errorf("hash %d differs: %x vs %x", i, hashes1[i], hashes2[i])
		}
	}
}

func TestStateHashChain_PrevHashLinks(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	_, hex := tc.createAuction(t, authority, 3)
	tc.placeBid(t, hex, uuid.New(), 1000, 1)

	outputs := drainOutputs(tc.persist)
	if len(outputs) < 2 {
		t.Fatalf("expected at least 2 outputs, got %d", len(outputs))
	}
	for i := 1; i < len(outputs); i++ {
		if outputs[i].Envelope.PrevHash != outputs[i-1].Envelope.StateHash {
			t.Errorf("envelope %d prev hash does not link to predecessor", i)
		}
	}
}

// ============================================================================
// Test: Full Lifecycle (auction through disbursement)
// ============================================================================

func TestFullLifecycle_BidRedeemClaimEmpty(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	creator := uuid.New()
	bidder := uuid.New()
	referrer := uuid.New()
	vaultID := uuid.New()
	metaID := uuid.New()

	// Store policy, asset descriptor, and vault funding are global
	tc.mustProcess(t, &event.StoreSetEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Public:    true,
		Sequence:  tc.nextGlobal(),
		Timestamp: ts(0),
	})
	tc.mustProcess(t, &event.MetadataRegisterEvent{
		RequestID: uuid.New(),
		Authority: creator,
		Metadata:  metaID,
		Creator:   creator,
		Name:      "Genesis Piece",
		Sequence:  tc.nextGlobal(),
		Timestamp: ts(0),
	})
	tc.mustProcess(t, &event.VaultPoolAddEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Vault:     vaultID,
		PoolIndex: 0,
		Metadata:  metaID,
		Amount:    5,
		Sequence:  tc.nextGlobal(),
		Timestamp: ts(0),
	})

	addr, hex := tc.createAuction(t, authority, 1)

	tc.mustProcess(t, &event.SettlementInitEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Auction:   hex,
		Vault:     vaultID,
		PrizeConfigs: []event.PrizeConfigSpec{
			{PrizeIndex: 0, Quantity: 1, Kind: int32(settlement.PrizeKindDirect)},
		},
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(1),
	})
	tc.mustProcess(t, &event.PrizeValidateEvent{
		RequestID:  uuid.New(),
		Authority:  authority,
		Auction:    hex,
		PrizeIndex: 0,
		Metadata:   metaID,
		Creator:    creator,
		Sequence:   tc.nextFor(hex),
		Timestamp:  ts(2),
	})

	tc.placeBid(t, hex, bidder, 10_000, 3)

	tc.mustProcess(t, &event.AuctionEndEvent{
		RequestID: uuid.New(),
		Authority: authority,
		Auction:   hex,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(4),
	})
	tc.mustProcess(t, &event.PrizeRedeemEvent{
		RequestID:  uuid.New(),
		Bidder:     bidder,
		Auction:    hex,
		PrizeIndex: 0,
		Sequence:   tc.nextFor(hex),
		Timestamp:  ts(5),
	})
	tc.mustProcess(t, &event.BidClaimEvent{
		RequestID:      uuid.New(),
		Authority:      authority,
		Auction:        hex,
		Bidder:         bidder,
		FeeBasisPoints: 500,
		Referrer:       &referrer,
		Sequence:       tc.nextFor(hex),
		Timestamp:      ts(6),
	})

	destination := uuid.New()
	tc.mustProcess(t, &event.PaymentAccountEmptyEvent{
		RequestID:   uuid.New(),
		Authority:   authority,
		Auction:     hex,
		Destination: destination,
		Sequence:    tc.nextFor(hex),
		Timestamp:   ts(7),
	})

	// Prize pool drained by one
	pool, ok := tc.c.Vaults().Pool(vaultID, 0)
	if !ok || pool.Balance != 4 {
		t.Errorf("pool balance = %+v, want 4", pool)
	}

	// Header finished: prize claimed, nothing pending
	h, ok := tc.c.Coordinator().Header(addr)
	if !ok {
		t.Fatal("settlement header missing")
	}
	if h.Status != settlement.StatusFinished {
		t.Errorf("header status = %s, want Finished", h.Status)
	}

	// Sweep split: 10_000 at 500bp with a referrer is 9_500 / 400 / 100
	balances := tc.c.Balances()
	if got := balances.Balance(ledger.NewProtocolFeeAccountKey("USDC")); got != 400 {
		t.Errorf("protocol fee balance = %d, want 400", got)
	}
	if got := balances.Balance(ledger.NewReferralAccountKey(referrer, "USDC")); got != 100 {
		t.Errorf("referral balance = %d, want 100", got)
	}
	if got := balances.Balance(ledger.NewPaymentAccountKey(addr, "USDC")); got != 0 {
		t.Errorf("payment account balance after empty = %d, want 0", got)
	}
	if got := balances.Balance(ledger.NewBidderAccountKey(destination, "USDC")); got != 9_500 {
		t.Errorf("destination balance = %d, want 9_500", got)
	}
	if got := balances.Balance(ledger.NewPotAccountKey(addr, bidder, "USDC")); got != 0 {
		t.Errorf("pot balance = %d, want 0", got)
	}

	// Sum over all accounts, external wallets included, is zero
	if imb := balances.TotalImbalance(); imb != 0 {
		t.Errorf("ledger imbalance = %d, want 0", imb)
	}
}

// ============================================================================
// Test: Envelope Contents
// ============================================================================

func TestEnvelope_HasCorrectFields(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	_, hex := tc.createAuction(t, authority, 3)
	drainOutputs(tc.persist)

	bid := &event.BidPlaceEvent{
		BidID:     uuid.New(),
		Bidder:    uuid.New(),
		Auction:   hex,
		Amount:    1000,
		Sequence:  tc.nextFor(hex),
		Timestamp: ts(9),
	}
	tc.mustProcess(t, bid)

	outputs := drainOutputs(tc.persist)
	env := outputs[0].Envelope
	if env.EventType != event.EventTypeBidPlace {
		t.Errorf("event type = %s, want BidPlace", env.EventType)
	}
	if env.AuctionID == nil || *env.AuctionID != hex {
		t.Errorf("auction id = %v, want %s", env.AuctionID, hex)
	}
	if env.IdempotencyKey != bid.IdempotencyKey() {
		t.Errorf("idempotency key = %q, want %q", env.IdempotencyKey, bid.IdempotencyKey())
	}
	if !env.Timestamp.Equal(ts(9)) {
		t.Errorf("timestamp = %v, want %v", env.Timestamp, ts(9))
	}
	if len(env.Payload) == 0 {
		t.Error("payload should carry the encoded event")
	}

	decoded, err := event.Decode(env.EventType, env.Payload)
	if err != nil {
		t.Fatalf("payload round-trip: %v", err)
	}
	if decoded.IdempotencyKey() != bid.IdempotencyKey() {
		t.Errorf("decoded payload key mismatch")
	}
}

// ============================================================================
// Test: Snapshot Restore
// ============================================================================

func TestSnapshotRestore_ResumesProcessing(t *testing.T) {
	tc := newTestCore()
	authority := uuid.New()
	bidder := uuid.New()
	addr, hex := tc.createAuction(t, authority, 3)
	tc.placeBid(t, hex, bidder, 1000, 1)
	drainOutputs(tc.persist)

	snap := tc.c.CreateSnapshotState()

	// Fresh core from the snapshot; partition cursors carry over
	restored := newTestCore()
	restored.c.RestoreFromSnapshot(snap)
	restored.seqs = tc.seqs

	if restored.c.GetSequence() != tc.c.GetSequence() {
		t.Errorf("restored sequence = %d, want %d", restored.c.GetSequence(), tc.c.GetSequence())
	}
	if restored.c.GetStateHash() != tc.c.GetStateHash() {
		t.Error("restored state hash does not match chain tip")
	}
	pot := ledger.NewPotAccountKey(addr, bidder, "USDC")
	if got := restored.c.Balances().Balance(pot); got != 1000 {
		t.Errorf("restored pot balance = %d, want 1000", got)
	}

	// New events keep flowing on the restored core. The cancel proves
	// the bidder record survived the snapshot; the raise re-escrows.
	restored.mustProcess(t, &event.BidCancelEvent{
		RequestID: uuid.New(),
		Bidder:    bidder,
		Auction:   hex,
		Sequence:  restored.nextFor(hex),
		Timestamp: ts(2),
	})
	if got := restored.c.Balances().Balance(pot); got != 0 {
		t.Errorf("post-restore refund balance = %d, want 0", got)
	}
	restored.placeBid(t, hex, bidder, 2000, 3)
	if got := restored.c.Balances().Balance(pot); got != 2000 {
		t.Errorf("post-restore pot balance = %d, want 2000", got)
	}
}

// ============================================================================
// Test: Projection Channel (non-blocking drop)
// ============================================================================

func TestProjectionChannel_DropsOnFull(t *testing.T) {
	persistCh := make(chan core.CoreOutput, 1024)
	projCh := make(chan core.CoreOutput, 1) // Tiny buffer — will fill up
	c := core.NewAuctionCore(0, persistCh, projCh, nil, nil)

	authority := uuid.New()
	for i := int64(0); i < 5; i++ {
		err := c.ProcessEvent(&event.AuctionCreateEvent{
			RequestID:       uuid.New(),
			Authority:       authority,
			Resource:        uuid.New(),
			SettlementAsset: "USDC",
			WinnerCap:       1,
			Sequence:        i,
			Timestamp:       ts(i),
		})
		if err != nil {
			t.Fatalf("ProcessEvent %d failed: %v", i, err)
		}
	}

	// All 5 succeed; projection drops are silent
	if got := len(drainOutputs(persistCh)); got != 5 {
		t.Errorf("expected 5 persist outputs, got %d", got)
	}
}
