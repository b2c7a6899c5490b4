package core

import (
	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/auction"
	"AuctionLedger/internal/escrow"
	"AuctionLedger/internal/event"
	"AuctionLedger/internal/ledger"
	"AuctionLedger/internal/metadata"
	"AuctionLedger/internal/observability"
	"AuctionLedger/internal/policy"
	"AuctionLedger/internal/settlement"
	"AuctionLedger/internal/vault"
	"fmt"
	"sort"
	"time"
)

// AuctionCore is the single-threaded event processor
type AuctionCore struct {
	sequence          int64
	hasher            *StateHasher
	balanceTracker    *ledger.BalanceTracker
	book              *auction.Book
	pots              *escrow.Registry
	vaults            *vault.Registry
	metadata          *metadata.Store
	policy            *policy.Store
	coordinator       *settlement.Coordinator
	idempotency       *IdempotencyChecker
	sequenceValidator *SequenceValidator
	metrics           *observability.Metrics

	persistChan    chan<- CoreOutput
	projectionChan chan<- CoreOutput
}

type CoreOutput struct {
	Envelope   *event.EventEnvelope
	Batch      *ledger.Batch
	StateDelta []byte
}

func NewAuctionCore(
	startSequence int64,
	persistChan, projectionChan chan<- CoreOutput,
	dbChecker DBIdempotencyChecker,
	metrics *observability.Metrics,
) *AuctionCore {
	balanceTracker := ledger.NewBalanceTracker()
	book := auction.NewBook()
	pots := escrow.NewRegistry()
	vaults := vault.NewRegistry()
	metaStore := metadata.NewStore()
	policyStore := policy.NewStore()
	coordinator := settlement.NewCoordinator(book, pots, vaults, metaStore, policyStore, balanceTracker)

	// Initialize with capacity of 1M entries (configurable)
	idempotencyChecker := NewIdempotencyChecker(1_000_000, dbChecker)
	sequenceValidator := NewSequenceValidator()

	return &AuctionCore{
		sequence:          startSequence,
		hasher:            NewStateHasher(),
		balanceTracker:    balanceTracker,
		book:              book,
		pots:              pots,
		vaults:            vaults,
		metadata:          metaStore,
		policy:            policyStore,
		coordinator:       coordinator,
		idempotency:       idempotencyChecker,
		sequenceValidator: sequenceValidator,
		metrics:           metrics,
		persistChan:       persistChan,
		projectionChan:    projectionChan,
	}
}

// ProcessEvent is the main processing pipeline
func (c *AuctionCore) ProcessEvent(evt event.Event) error {
	start := time.Now()
	eventType := evt.EventType().String()
	idempotencyKey := evt.IdempotencyKey()

	// Step 1: Idempotency check (two-tier)
	isDuplicate := c.idempotency.IsDuplicate(eventType, idempotencyKey)

	// Step 2: Sequence validation
	partition := c.getPartition(evt)
	sourceSequence := evt.SourceSequence()

	if err := c.sequenceValidator.ValidateSequence(partition, sourceSequence, idempotencyKey, isDuplicate); err != nil {
		return fmt.Errorf("sequence validation failed: %w", err)
	}

	// If duplicate, skip processing
	if isDuplicate {
		if c.metrics != nil {
			c.metrics.CoreEventsRejected.WithLabelValues(eventType, "duplicate").Inc()
		}
		return nil
	}

	// Step 3: Event dispatch
	batch, err := c.dispatchEvent(evt)
	if err != nil {
		if c.metrics != nil {
			c.metrics.CoreEventsRejected.WithLabelValues(eventType, "dispatch").Inc()
		}
		return fmt.Errorf("dispatch failed: %w", err)
	}

	// Step 4: Validate and apply journals. State-only events (phase
	// flips, validations, no-op redemptions) produce no batch but still
	// get an envelope in the event log.
	if batch != nil && len(batch.Journals) > 0 {
		if err := batch.Validate(); err != nil {
			panic(fmt.Sprintf("FATAL: unbalanced batch: %v", err))
		}
		c.balanceTracker.ApplyBatch(batch)

		if c.metrics != nil {
			for _, j := range batch.Journals {
				c.metrics.CoreJournals.WithLabelValues(j.Reason).Inc()
			}
		}
	}

	// Step 5: Compute state digest and chain hash
	stateDigest := c.computeStateDigest(evt, batch)
	prevHash := c.hasher.GetPrevHash()
	stateHash := c.hasher.ComputeHash(c.sequence, stateDigest)

	// Step 6: Create envelope
	envelope := &event.EventEnvelope{
		Sequence:       c.sequence,
		IdempotencyKey: idempotencyKey,
		EventType:      evt.EventType(),
		AuctionID:      evt.AuctionID(),
		Timestamp:      c.getEventTimestamp(evt),
		SourceSequence: sourceSequence,
		Payload:        event.Encode(evt),
		StateHash:      stateHash,
		PrevHash:       prevHash,
	}

	output := CoreOutput{
		Envelope:   envelope,
		Batch:      batch,
		StateDelta: stateDigest,
	}
	c.sequence++

	// Step 7: Post-checks
	if err := c.postCheckInvariants(); err != nil {
		panic(fmt.Sprintf("FATAL: invariant violated: %v", err))
	}

	// Step 8: Emit outputs.
	// Persistence uses a BLOCKING send (backpressure), projections a
	// NON-BLOCKING send with silent drop.
	c.persistChan <- output

	select {
	case c.projectionChan <- output:
	default:
		// Dropped; projections catch up via rebuild from the event log
	}

	// Step 9: Mark as processed (add to LRU)
	c.idempotency.MarkProcessed(eventType, idempotencyKey)

	if c.metrics != nil {
		c.metrics.CoreEventsApplied.WithLabelValues(eventType).Inc()
		c.metrics.CoreEventDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
		c.metrics.CoreSequence.Set(float64(c.sequence))
	}

	return nil
}

// getPartition determines the partition key for sequence validation.
// Auction-scoped events order within their auction; store, vault, and
// metadata events share the global partition.
func (c *AuctionCore) getPartition(evt event.Event) string {
	if auctionID := evt.AuctionID(); auctionID != nil {
		return fmt.Sprintf("auction:%s", *auctionID)
	}
	return "global"
}

// getEventTimestamp extracts the versioned timestamp from the event.
// The core never calls time.Now(); every close-condition evaluation and
// journal timestamp is a replayable input.
func (c *AuctionCore) getEventTimestamp(evt event.Event) time.Time {
	switch e := evt.(type) {
	case *event.AuctionCreateEvent:
		return e.Timestamp
	case *event.AuctionStartEvent:
		return e.Timestamp
	case *event.AuctionEndEvent:
		return e.Timestamp
	case *event.BidPlaceEvent:
		return e.Timestamp
	case *event.BidCancelEvent:
		return e.Timestamp
	case *event.BidClaimEvent:
		return e.Timestamp
	case *event.PotCloseEvent:
		return e.Timestamp
	case *event.SettlementInitEvent:
		return e.Timestamp
	case *event.PrizeValidateEvent:
		return e.Timestamp
	case *event.OpenDistributionValidateEvent:
		return e.Timestamp
	case *event.PrizeRedeemEvent:
		return e.Timestamp
	case *event.MasterRedeemEvent:
		return e.Timestamp
	case *event.OpenDistributionRedeemEvent:
		return e.Timestamp
	case *event.PaymentAccountEmptyEvent:
		return e.Timestamp
	case *event.CreatorWhitelistSetEvent:
		return e.Timestamp
	case *event.StoreSetEvent:
		return e.Timestamp
	case *event.VaultPoolAddEvent:
		return e.Timestamp
	case *event.MetadataRegisterEvent:
		return e.Timestamp
	default:
		panic(fmt.Sprintf("FATAL: getEventTimestamp called with unhandled event type %T", evt))
	}
}

// computeStateDigest creates the canonical bytes for the state hash:
// the post-apply balance of every account the batch touched, plus a
// domain section covering the auction and header the event affected.
func (c *AuctionCore) computeStateDigest(evt event.Event, batch *ledger.Batch) []byte {
	affectedAccounts := make(map[ledger.AccountKey]bool)

	if batch != nil {
		for _, j := range batch.Journals {
			affectedAccounts[j.DebitAccount] = true
			affectedAccounts[j.CreditAccount] = true
		}
	}

	accounts := make([]ledger.AccountKey, 0, len(affectedAccounts))
	for key := range affectedAccounts {
		accounts = append(accounts, key)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountPath() < accounts[j].AccountPath()
	})

	digest := make([]byte, 0, len(accounts)*64)
	for _, key := range accounts {
		balance := c.balanceTracker.Balance(key)

		path := key.AccountPath()
		digest = append(digest, byte(len(path)))
		digest = append(digest, []byte(path)...)
		digest = appendInt64LE(digest, balance)
	}

	if auctionID := evt.AuctionID(); auctionID != nil {
		if addr, err := addressing.Parse(*auctionID); err == nil {
			digest = c.appendAuctionDigest(digest, addr)
		}
	}

	return digest
}

// appendAuctionDigest folds the auction's phase, close time, ladder,
// and settlement status into the digest so that state-only transitions
// still advance the hash chain.
func (c *AuctionCore) appendAuctionDigest(digest []byte, addr addressing.Address) []byte {
	a, ok := c.book.Get(addr)
	if !ok {
		return digest
	}

	digest = append(digest, addr[:]...)
	digest = append(digest, byte(a.Phase))
	if a.EndedAt != nil {
		digest = appendInt64LE(digest, a.EndedAt.UnixMicro())
	} else {
		digest = appendInt64LE(digest, 0)
	}
	digest = appendInt64LE(digest, int64(a.BidState.Len()))
	for _, bid := range a.BidState.Bids {
		digest = append(digest, bid.PotID[:]...)
		digest = appendInt64LE(digest, bid.Amount)
	}

	if h, ok := c.coordinator.Header(addr); ok {
		digest = append(digest, byte(h.Status))
		digest = appendInt64LE(digest, h.PendingAuthorityReturns)
		digest = appendInt64LE(digest, h.OpenDistributionMinted)
		for _, ps := range h.PrizeStates {
			flags := byte(0)
			if ps.Validated {
				flags |= 1
			}
			if ps.Claimed {
				flags |= 2
			}
			digest = append(digest, flags)
			digest = appendInt64LE(digest, ps.MintedCount)
		}
	}

	return digest
}

func appendInt64LE(buf []byte, v int64) []byte {
	return append(buf,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56),
	)
}

// postCheckInvariants validates global invariants after application.
// The full conservation sweep runs on a cadence; per-account overdraft
// protection is enforced on every apply.
func (c *AuctionCore) postCheckInvariants() error {
	if c.sequence%1000 != 0 {
		return nil
	}
	if imbalance := c.balanceTracker.TotalImbalance(); imbalance != 0 {
		return fmt.Errorf("ledger imbalance %d at sequence %d", imbalance, c.sequence)
	}
	return nil
}

func (c *AuctionCore) dispatchEvent(evt event.Event) (*ledger.Batch, error) {
	switch e := evt.(type) {
	case *event.AuctionCreateEvent:
		return c.handleAuctionCreate(e)
	case *event.AuctionStartEvent:
		return c.handleAuctionStart(e)
	case *event.AuctionEndEvent:
		return c.handleAuctionEnd(e)
	case *event.BidPlaceEvent:
		return c.handleBidPlace(e)
	case *event.BidCancelEvent:
		return c.handleBidCancel(e)
	case *event.BidClaimEvent:
		return c.handleBidClaim(e)
	case *event.PotCloseEvent:
		return c.handlePotClose(e)
	case *event.SettlementInitEvent:
		return c.handleSettlementInit(e)
	case *event.PrizeValidateEvent:
		return c.handlePrizeValidate(e)
	case *event.OpenDistributionValidateEvent:
		return c.handleOpenDistributionValidate(e)
	case *event.PrizeRedeemEvent:
		return c.handlePrizeRedeem(e)
	case *event.MasterRedeemEvent:
		return c.handleMasterRedeem(e)
	case *event.OpenDistributionRedeemEvent:
		return c.handleOpenDistributionRedeem(e)
	case *event.PaymentAccountEmptyEvent:
		return c.handlePaymentAccountEmpty(e)
	case *event.CreatorWhitelistSetEvent:
		return c.handleCreatorWhitelistSet(e)
	case *event.StoreSetEvent:
		return c.handleStoreSet(e)
	case *event.VaultPoolAddEvent:
		return c.handleVaultPoolAdd(e)
	case *event.MetadataRegisterEvent:
		return c.handleMetadataRegister(e)
	default:
		return nil, fmt.Errorf("unknown event type: %T", evt)
	}
}

// --- Lifecycle handlers ---

func (c *AuctionCore) handleAuctionCreate(evt *event.AuctionCreateEvent) (*ledger.Batch, error) {
	var hardEnd, endGap *time.Duration
	if evt.HardEndSecs != nil {
		d := time.Duration(*evt.HardEndSecs) * time.Second
		hardEnd = &d
	}
	if evt.EndGapSecs != nil {
		d := time.Duration(*evt.EndGapSecs) * time.Second
		endGap = &d
	}

	_, err := c.book.Create(evt.Authority, evt.Resource, evt.SettlementAsset,
		evt.WinnerCap, hardEnd, endGap, evt.PriceFloor, evt.BuyNowPrice)
	if err != nil {
		return nil, err
	}

	if c.metrics != nil {
		c.metrics.AuctionsCreated.Inc()
	}
	return nil, nil
}

func (c *AuctionCore) handleAuctionStart(evt *event.AuctionStartEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	if err := c.book.Start(addr, evt.Authority, evt.Timestamp); err != nil {
		return nil, err
	}
	// A validated header attached before start moves to Running here
	c.coordinator.NotifyStarted(addr)
	return nil, nil
}

func (c *AuctionCore) handleAuctionEnd(evt *event.AuctionEndEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	if err := c.book.End(addr, evt.Authority, evt.Timestamp); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.AuctionsClosed.WithLabelValues("authority").Inc()
	}
	return nil, nil
}

// --- Bid handlers ---

func (c *AuctionCore) handleBidPlace(evt *event.BidPlaceEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	a, ok := c.book.Get(addr)
	if !ok {
		return nil, auction.ErrAuctionNotFound
	}

	atCapacity := a.BidState.Capped && a.BidState.Len() == a.BidState.Capacity

	res, err := c.book.PlaceBid(addr, evt.Bidder, evt.Amount, evt.Timestamp)
	if err != nil {
		return nil, err
	}

	if c.metrics != nil && res.Closed {
		if res.Admitted {
			c.metrics.BuyNowCloses.Inc()
			c.metrics.AuctionsClosed.WithLabelValues("buy_now").Inc()
		} else {
			c.metrics.AuctionsClosed.WithLabelValues("deadline").Inc()
		}
	}

	if !res.Admitted {
		// Lazy close or a bid that did not beat the ladder; funds stay
		// with the bidder
		if c.metrics != nil && !res.Closed {
			c.metrics.BidsIgnored.Inc()
		}
		return nil, nil
	}

	if c.metrics != nil {
		c.metrics.BidsAdmitted.Inc()
		if atCapacity {
			c.metrics.LadderEvictions.Inc()
		}
	}

	// Admission implies the bidder holds no active record, so the pot
	// is empty: a raise must cancel (and refund) first
	pot := c.pots.Open(addr, evt.Bidder, a.SettlementAsset)
	if held := c.balanceTracker.Balance(pot.Account); held != 0 {
		panic(fmt.Sprintf("FATAL: pot %s funded before admission: %d", pot.Account.AccountPath(), held))
	}

	batch := ledger.NewBatch(c.sequence)
	batch.Add(ledger.NewBidderAccountKey(evt.Bidder, a.SettlementAsset), pot.Account,
		evt.Amount, "bid_escrow", evt.Timestamp)
	return batch, nil
}

func (c *AuctionCore) handleBidCancel(evt *event.BidCancelEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	if _, err := c.book.CancelBid(addr, evt.Bidder, evt.Timestamp); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.BidsCancelled.Inc()
	}

	pot, ok := c.pots.Get(addr, evt.Bidder)
	if !ok || pot.Emptied {
		return nil, nil
	}
	held := c.balanceTracker.Balance(pot.Account)
	if held == 0 {
		return nil, nil
	}

	a, _ := c.book.Get(addr)
	batch := ledger.NewBatch(c.sequence)
	batch.Add(pot.Account, ledger.NewBidderAccountKey(evt.Bidder, a.SettlementAsset),
		held, "bid_refund", evt.Timestamp)
	return batch, nil
}

func (c *AuctionCore) handleBidClaim(evt *event.BidClaimEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	res, err := c.coordinator.ClaimBid(addr, evt.Authority, evt.Bidder,
		evt.FeeBasisPoints, evt.Referrer, c.sequence, evt.Timestamp)
	if err != nil {
		return nil, err
	}
	if !res.Applied {
		if c.metrics != nil {
			c.metrics.RedemptionNoOps.WithLabelValues("claim").Inc()
		}
		return nil, nil
	}
	if c.metrics != nil {
		c.metrics.PotsSwept.Inc()
		c.metrics.FeesCollected.Add(float64(res.Swept.SinkFee + res.Swept.Referral))
		if res.Swept.Referral > 0 {
			c.metrics.ReferralsPaid.Add(float64(res.Swept.Referral))
		}
	}
	return res.Batch, nil
}

func (c *AuctionCore) handlePotClose(evt *event.PotCloseEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	return nil, c.coordinator.ClosePot(addr, evt.Authority, evt.Bidder, evt.Timestamp)
}

// --- Settlement handlers ---

func (c *AuctionCore) handleSettlementInit(evt *event.SettlementInitEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}

	settings, err := settingsFromEvent(evt)
	if err != nil {
		return nil, err
	}
	_, err = c.coordinator.Init(evt.Authority, addr, evt.Vault, settings)
	return nil, err
}

func settingsFromEvent(evt *event.SettlementInitEvent) (settlement.Settings, error) {
	if evt.OpenWinnerConstraint < int32(settlement.WinnerConstraintNone) ||
		evt.OpenWinnerConstraint > int32(settlement.WinnerConstraintGranted) {
		return settlement.Settings{}, fmt.Errorf("unknown winner constraint %d", evt.OpenWinnerConstraint)
	}
	if evt.OpenNonWinnerConstraint < int32(settlement.NonWinnerConstraintNone) ||
		evt.OpenNonWinnerConstraint > int32(settlement.NonWinnerConstraintBidPrice) {
		return settlement.Settings{}, fmt.Errorf("unknown non-winner constraint %d", evt.OpenNonWinnerConstraint)
	}

	configs := make([]settlement.PrizeConfig, 0, len(evt.PrizeConfigs))
	for _, spec := range evt.PrizeConfigs {
		if spec.Kind < int32(settlement.PrizeKindDirect) || spec.Kind > int32(settlement.PrizeKindLimitedEdition) {
			return settlement.Settings{}, fmt.Errorf("unknown prize kind %d at index %d", spec.Kind, spec.PrizeIndex)
		}
		configs = append(configs, settlement.PrizeConfig{
			PrizeIndex: spec.PrizeIndex,
			Quantity:   spec.Quantity,
			Kind:       settlement.PrizeKind(spec.Kind),
		})
	}

	return settlement.Settings{
		OpenWinnerConstraint:    settlement.WinnerConstraint(evt.OpenWinnerConstraint),
		OpenNonWinnerConstraint: settlement.NonWinnerConstraint(evt.OpenNonWinnerConstraint),
		OpenDistributionPool:    evt.OpenDistributionPool,
		OpenDistributionPrice:   evt.OpenDistributionPrice,
		PrizeConfigs:            configs,
	}, nil
}

func (c *AuctionCore) handlePrizeValidate(evt *event.PrizeValidateEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	if err := c.coordinator.ValidatePrize(addr, evt.Authority, evt.PrizeIndex, evt.Metadata, evt.Creator); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		kind := "unknown"
		if h, ok := c.coordinator.Header(addr); ok {
			for _, cfg := range h.Settings.PrizeConfigs {
				if cfg.PrizeIndex == evt.PrizeIndex {
					kind = cfg.Kind.String()
					break
				}
			}
		}
		c.metrics.PrizesValidated.WithLabelValues(kind).Inc()
	}
	return nil, nil
}

func (c *AuctionCore) handleOpenDistributionValidate(evt *event.OpenDistributionValidateEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	if err := c.coordinator.ValidateOpenDistribution(addr, evt.Authority, evt.Metadata, evt.Creator); err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.PrizesValidated.WithLabelValues("OpenDistribution").Inc()
	}
	return nil, nil
}

// --- Redemption handlers ---

func (c *AuctionCore) handlePrizeRedeem(evt *event.PrizeRedeemEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	res, err := c.coordinator.RedeemPrize(addr, evt.Bidder, evt.PrizeIndex, evt.Timestamp)
	if err != nil {
		return nil, err
	}
	c.recordRedemption("prize", addr, res.Applied)
	return res.Batch, nil
}

func (c *AuctionCore) handleMasterRedeem(evt *event.MasterRedeemEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	res, err := c.coordinator.RedeemMaster(addr, evt.Bidder, evt.PrizeIndex, evt.NewAuthority, evt.Timestamp)
	if err != nil {
		return nil, err
	}
	c.recordRedemption("master", addr, res.Applied)
	return res.Batch, nil
}

func (c *AuctionCore) handleOpenDistributionRedeem(evt *event.OpenDistributionRedeemEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	res, err := c.coordinator.RedeemOpenDistribution(addr, evt.Bidder, c.sequence, evt.Timestamp)
	if err != nil {
		return nil, err
	}
	c.recordRedemption("open", addr, res.Applied)
	return res.Batch, nil
}

func (c *AuctionCore) recordRedemption(flavor string, addr addressing.Address, applied bool) {
	if c.metrics == nil {
		return
	}
	if !applied {
		c.metrics.RedemptionNoOps.WithLabelValues(flavor).Inc()
		return
	}
	c.metrics.Redemptions.WithLabelValues(flavor).Inc()
	if h, ok := c.coordinator.Header(addr); ok && h.Status == settlement.StatusFinished {
		c.metrics.HeadersFinished.Inc()
	}
}

func (c *AuctionCore) handlePaymentAccountEmpty(evt *event.PaymentAccountEmptyEvent) (*ledger.Batch, error) {
	addr, err := addressing.Parse(evt.Auction)
	if err != nil {
		return nil, err
	}
	return c.coordinator.EmptyPaymentAccount(addr, evt.Authority, evt.Destination, c.sequence, evt.Timestamp)
}

// --- Store and asset handlers ---

func (c *AuctionCore) handleCreatorWhitelistSet(evt *event.CreatorWhitelistSetEvent) (*ledger.Batch, error) {
	return nil, c.policy.SetWhitelist(evt.Authority, evt.Creator, evt.Activated)
}

func (c *AuctionCore) handleStoreSet(evt *event.StoreSetEvent) (*ledger.Batch, error) {
	return nil, c.policy.Configure(evt.Authority, evt.Public)
}

func (c *AuctionCore) handleVaultPoolAdd(evt *event.VaultPoolAddEvent) (*ledger.Batch, error) {
	return nil, c.vaults.Add(evt.Vault, evt.PoolIndex, evt.Metadata, evt.Authority, evt.Amount)
}

func (c *AuctionCore) handleMetadataRegister(evt *event.MetadataRegisterEvent) (*ledger.Batch, error) {
	return nil, c.metadata.Register(&metadata.Descriptor{
		ID:              evt.Metadata,
		UpdateAuthority: evt.Authority,
		Creator:         evt.Creator,
		Name:            evt.Name,
		MaxSupply:       evt.MaxSupply,
		CurrentSupply:   evt.CurrentSupply,
	})
}

// --- Read accessors for query paths ---

func (c *AuctionCore) Book() *auction.Book                  { return c.book }
func (c *AuctionCore) Pots() *escrow.Registry               { return c.pots }
func (c *AuctionCore) Vaults() *vault.Registry              { return c.vaults }
func (c *AuctionCore) Metadata() *metadata.Store            { return c.metadata }
func (c *AuctionCore) Policy() *policy.Store                { return c.policy }
func (c *AuctionCore) Coordinator() *settlement.Coordinator { return c.coordinator }
func (c *AuctionCore) Balances() *ledger.BalanceTracker     { return c.balanceTracker }
