package settlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/auction"
	"AuctionLedger/internal/escrow"
	"AuctionLedger/internal/ledger"
	"AuctionLedger/internal/metadata"
	"AuctionLedger/internal/policy"
	"AuctionLedger/internal/vault"
)

var (
	ErrHeaderNotFound       = errors.New("settlement header not found")
	ErrHeaderExists         = errors.New("settlement header already initialized")
	ErrUnauthorized         = errors.New("caller is not the settlement authority")
	ErrBadSettings          = errors.New("invalid settlement settings")
	ErrWrongStatus          = errors.New("operation not valid in current status")
	ErrNoSuchPrize          = errors.New("no prize config for index")
	ErrMixedPrizeKinds      = errors.New("prize kinds differ for shared pool index")
	ErrAlreadyValidated     = errors.New("prize already validated")
	ErrPrizeNotValidated    = errors.New("prize has not been validated")
	ErrCreatorNotAllowed    = errors.New("creator is not allowed on this store")
	ErrDescriptorMismatch   = errors.New("descriptor does not match the pool asset")
	ErrPoolQuantityMismatch = errors.New("pool balance does not match requested quantity")
	ErrAuctionNotEnded      = errors.New("auction has not ended")
	ErrNotWinner            = errors.New("bidder holds no winning placement")
	ErrPrizeMismatch        = errors.New("prize index does not match the winner's placement")
	ErrWrongPrizeKind       = errors.New("prize kind does not match the redemption flavor")
	ErrNoOpenDistribution   = errors.New("no open distribution attached")
	ErrNotEligible          = errors.New("bidder is not eligible for the open distribution")
)

type ticketKey struct {
	Auction addressing.Address
	Bidder  uuid.UUID
}

type authorityKey struct {
	Auction  addressing.Address
	Metadata uuid.UUID
}

// RedeemResult reports what a redemption actually did. Applied is false
// on the idempotent no-op paths: the ticket flag was already set or the
// prize was already claimed.
type RedeemResult struct {
	Applied bool
	Batch   *ledger.Batch
}

// ClaimResult reports a pot sweep
type ClaimResult struct {
	Applied bool
	Swept   escrow.Sweep
	Batch   *ledger.Batch
}

// Coordinator owns every settlement header and drives validation,
// redemption, and fund sweeps against the collaborating state. Owned by
// the single-threaded core; no locking.
type Coordinator struct {
	headers             map[addressing.Address]*Header
	tickets             map[ticketKey]*Ticket
	originalAuthorities map[authorityKey]uuid.UUID

	book     *auction.Book
	pots     *escrow.Registry
	vaults   *vault.Registry
	metadata *metadata.Store
	policy   *policy.Store
	balances *ledger.BalanceTracker
}

func NewCoordinator(book *auction.Book, pots *escrow.Registry, vaults *vault.Registry,
	meta *metadata.Store, pol *policy.Store, balances *ledger.BalanceTracker) *Coordinator {
	return &Coordinator{
		headers:             make(map[addressing.Address]*Header),
		tickets:             make(map[ticketKey]*Ticket),
		originalAuthorities: make(map[authorityKey]uuid.UUID),
		book:                book,
		pots:                pots,
		vaults:              vaults,
		metadata:            meta,
		policy:              pol,
		balances:            balances,
	}
}

// Init creates the settlement header for an auction. Create-once.
func (c *Coordinator) Init(authority uuid.UUID, auctionAddr addressing.Address,
	vaultID uuid.UUID, settings Settings) (*Header, error) {

	a, ok := c.book.Get(auctionAddr)
	if !ok {
		return nil, auction.ErrAuctionNotFound
	}
	if a.Authority != authority {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	// Pools may be deposited after init; the authority check applies
	// once the vault is known, and validation re-checks every pool.
	if vaultOwner, ok := c.vaults.Authority(vaultID); ok && vaultOwner != authority {
		return nil, fmt.Errorf("%w: vault %s", ErrUnauthorized, vaultID)
	}

	addr := addressing.Derive(addressing.NamespaceSettlement, auctionAddr[:])
	if _, ok := c.headers[addr]; ok {
		return nil, fmt.Errorf("%w: auction %s", ErrHeaderExists, auctionAddr)
	}

	if err := validateSettings(a, settings); err != nil {
		return nil, err
	}

	custodyID, err := uuid.FromBytes(addr[:16])
	if err != nil {
		panic(fmt.Sprintf("FATAL: custody id derivation: %v", err))
	}

	h := &Header{
		Address:        addr,
		Authority:      authority,
		Auction:        auctionAddr,
		Vault:          vaultID,
		CustodyID:      custodyID,
		PaymentAccount: ledger.NewPaymentAccountKey(auctionAddr, a.SettlementAsset),
		Status:         StatusInitialized,
		Settings:       settings,
		PrizeStates:    make([]PrizeState, len(settings.PrizeConfigs)),
	}
	if len(settings.PrizeConfigs) == 0 {
		h.advanceTo(StatusValidated)
	}
	c.headers[addr] = h
	return h, nil
}

func validateSettings(a *auction.Auction, s Settings) error {
	if !a.BidState.Capped && len(s.PrizeConfigs) > 0 {
		return fmt.Errorf("%w: open auction cannot carry winner prizes", ErrBadSettings)
	}
	if a.BidState.Capped && len(s.PrizeConfigs) > a.BidState.Capacity {
		return fmt.Errorf("%w: %d prize configs for capacity %d",
			ErrBadSettings, len(s.PrizeConfigs), a.BidState.Capacity)
	}
	for i, cfg := range s.PrizeConfigs {
		if cfg.Quantity <= 0 {
			return fmt.Errorf("%w: config %d quantity %d", ErrBadSettings, i, cfg.Quantity)
		}
		if cfg.Kind == PrizeKindMasterRecord && cfg.Quantity != 1 {
			return fmt.Errorf("%w: config %d master record quantity must be 1", ErrBadSettings, i)
		}
	}
	if s.OpenDistributionPool == nil {
		if s.OpenWinnerConstraint != WinnerConstraintNone ||
			s.OpenNonWinnerConstraint != NonWinnerConstraintNone {
			return fmt.Errorf("%w: open constraints without a distribution pool", ErrBadSettings)
		}
		if len(s.PrizeConfigs) == 0 {
			return fmt.Errorf("%w: neither prizes nor open distribution", ErrBadSettings)
		}
	}
	if s.OpenNonWinnerConstraint == NonWinnerConstraintFixedPrice && s.OpenDistributionPrice == nil {
		return fmt.Errorf("%w: fixed-price constraint without a price", ErrBadSettings)
	}
	return nil
}

// ValidatePrize proves the pool behind one prize index can cover every
// config drawing from it, and for master records takes custody.
// Validation runs once per index; re-validation is rejected.
func (c *Coordinator) ValidatePrize(auctionAddr addressing.Address, authority uuid.UUID,
	prizeIndex uint8, metadataID, creator uuid.UUID) error {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return ErrHeaderNotFound
	}
	if h.Authority != authority {
		return fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	if h.Status >= StatusRunning {
		return fmt.Errorf("%w: %s", ErrWrongStatus, h.Status)
	}

	var (
		matched  []int
		kind     PrizeKind
		required int64
	)
	for i, cfg := range h.Settings.PrizeConfigs {
		if cfg.PrizeIndex != prizeIndex {
			continue
		}
		if len(matched) == 0 {
			kind = cfg.Kind
		} else if cfg.Kind != kind {
			return fmt.Errorf("%w: index %d", ErrMixedPrizeKinds, prizeIndex)
		}
		matched = append(matched, i)
		required += cfg.Quantity
	}
	if len(matched) == 0 {
		return fmt.Errorf("%w: index %d", ErrNoSuchPrize, prizeIndex)
	}
	for _, i := range matched {
		if h.PrizeStates[i].Validated {
			return fmt.Errorf("%w: index %d", ErrAlreadyValidated, prizeIndex)
		}
	}

	if !c.policy.CanList(creator) {
		return fmt.Errorf("%w: %s", ErrCreatorNotAllowed, creator)
	}
	desc, ok := c.metadata.Get(metadataID)
	if !ok {
		return fmt.Errorf("%w: %s", metadata.ErrDescriptorNotFound, metadataID)
	}
	if desc.Creator != creator {
		return fmt.Errorf("%w: descriptor %s creator %s", ErrDescriptorMismatch, metadataID, desc.Creator)
	}

	pool, ok := c.vaults.Pool(h.Vault, prizeIndex)
	if !ok {
		return fmt.Errorf("%w: %s/%d", vault.ErrPoolNotFound, h.Vault, prizeIndex)
	}
	if pool.Metadata != metadataID {
		return fmt.Errorf("%w: pool holds %s", ErrDescriptorMismatch, pool.Metadata)
	}

	switch kind {
	case PrizeKindDirect:
		if pool.Balance < required {
			return fmt.Errorf("%w: pool %d has %d, need at least %d",
				vault.ErrInsufficientPool, prizeIndex, pool.Balance, required)
		}
	case PrizeKindLimitedEdition:
		if pool.Balance != required {
			return fmt.Errorf("%w: pool %d has %d, need exactly %d",
				ErrPoolQuantityMismatch, prizeIndex, pool.Balance, required)
		}
	case PrizeKindMasterRecord:
		if pool.Balance != 1 {
			return fmt.Errorf("%w: pool %d has %d, master record needs exactly 1",
				ErrPoolQuantityMismatch, prizeIndex, pool.Balance)
		}
		// Record the current custodian once, then take custody
		key := authorityKey{Auction: h.Auction, Metadata: metadataID}
		if _, ok := c.originalAuthorities[key]; !ok {
			c.originalAuthorities[key] = desc.UpdateAuthority
		}
		if err := c.metadata.SetUpdateAuthority(metadataID, desc.UpdateAuthority, h.CustodyID); err != nil {
			return err
		}
		if err := c.vaults.SetCustodian(h.Vault, prizeIndex, h.CustodyID); err != nil {
			return err
		}
		h.PendingAuthorityReturns++
	}

	for _, i := range matched {
		h.PrizeStates[i].Validated = true
	}
	h.ValidatedCount += len(matched)
	if h.ValidatedCount == len(h.Settings.PrizeConfigs) {
		h.advanceTo(StatusValidated)
	}
	return nil
}

// ValidateOpenDistribution proves the open-distribution pool holds its
// master record and gates open redemption
func (c *Coordinator) ValidateOpenDistribution(auctionAddr addressing.Address, authority uuid.UUID,
	metadataID, creator uuid.UUID) error {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return ErrHeaderNotFound
	}
	if h.Authority != authority {
		return fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	if h.Settings.OpenDistributionPool == nil {
		return ErrNoOpenDistribution
	}
	if h.OpenDistributionValidated {
		return fmt.Errorf("%w: open distribution", ErrAlreadyValidated)
	}
	if !c.policy.CanList(creator) {
		return fmt.Errorf("%w: %s", ErrCreatorNotAllowed, creator)
	}
	desc, ok := c.metadata.Get(metadataID)
	if !ok {
		return fmt.Errorf("%w: %s", metadata.ErrDescriptorNotFound, metadataID)
	}
	if desc.Creator != creator {
		return fmt.Errorf("%w: descriptor %s creator %s", ErrDescriptorMismatch, metadataID, desc.Creator)
	}

	pool, ok := c.vaults.Pool(h.Vault, *h.Settings.OpenDistributionPool)
	if !ok {
		return fmt.Errorf("%w: %s/%d", vault.ErrPoolNotFound, h.Vault, *h.Settings.OpenDistributionPool)
	}
	if pool.Metadata != metadataID {
		return fmt.Errorf("%w: pool holds %s", ErrDescriptorMismatch, pool.Metadata)
	}
	if pool.Balance != 1 {
		return fmt.Errorf("%w: open pool has %d, needs exactly 1",
			ErrPoolQuantityMismatch, pool.Balance)
	}

	h.OpenDistributionValidated = true
	return nil
}

// NotifyStarted moves a fully validated header to Running when the
// auction opens for bidding
func (c *Coordinator) NotifyStarted(auctionAddr addressing.Address) {
	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return
	}
	if h.Status == StatusValidated {
		h.advanceTo(StatusRunning)
	}
}

// RedeemPrize delivers a Direct or LimitedEdition prize to a winning
// bidder. Duplicate calls are successful no-ops.
func (c *Coordinator) RedeemPrize(auctionAddr addressing.Address, bidder uuid.UUID,
	prizeIndex uint8, now time.Time) (RedeemResult, error) {

	h, rank, err := c.redeemPreamble(auctionAddr, bidder, now)
	if err != nil {
		return RedeemResult{}, err
	}

	ticket := c.ticketFor(auctionAddr, bidder)
	if ticket.PrizeRedeemed {
		return RedeemResult{}, nil
	}

	cfg, state, err := h.prizeForRank(rank, prizeIndex)
	if err != nil {
		return RedeemResult{}, err
	}
	if cfg.Kind != PrizeKindDirect && cfg.Kind != PrizeKindLimitedEdition {
		return RedeemResult{}, fmt.Errorf("%w: %s", ErrWrongPrizeKind, cfg.Kind)
	}
	if state.Claimed {
		return RedeemResult{}, nil
	}

	if err := c.vaults.Withdraw(h.Vault, prizeIndex, cfg.Quantity); err != nil {
		return RedeemResult{}, err
	}

	state.Claimed = true
	if cfg.Kind == PrizeKindLimitedEdition {
		state.MintedCount += cfg.Quantity
	}
	ticket.PrizeRedeemed = true
	h.advanceTo(StatusDisbursing)
	h.maybeFinish()
	return RedeemResult{Applied: true}, nil
}

// RedeemMaster transfers a master record and its custody to the
// winner's chosen authority. Duplicate calls are successful no-ops.
func (c *Coordinator) RedeemMaster(auctionAddr addressing.Address, bidder uuid.UUID,
	prizeIndex uint8, newAuthority uuid.UUID, now time.Time) (RedeemResult, error) {

	h, rank, err := c.redeemPreamble(auctionAddr, bidder, now)
	if err != nil {
		return RedeemResult{}, err
	}

	ticket := c.ticketFor(auctionAddr, bidder)
	if ticket.PrizeRedeemed {
		return RedeemResult{}, nil
	}

	cfg, state, err := h.prizeForRank(rank, prizeIndex)
	if err != nil {
		return RedeemResult{}, err
	}
	if cfg.Kind != PrizeKindMasterRecord {
		return RedeemResult{}, fmt.Errorf("%w: %s", ErrWrongPrizeKind, cfg.Kind)
	}
	if state.Claimed {
		return RedeemResult{}, nil
	}

	pool, ok := c.vaults.Pool(h.Vault, prizeIndex)
	if !ok {
		return RedeemResult{}, fmt.Errorf("%w: %s/%d", vault.ErrPoolNotFound, h.Vault, prizeIndex)
	}
	if err := c.vaults.Withdraw(h.Vault, prizeIndex, 1); err != nil {
		return RedeemResult{}, err
	}
	if err := c.metadata.SetUpdateAuthority(pool.Metadata, h.CustodyID, newAuthority); err != nil {
		return RedeemResult{}, err
	}

	state.Claimed = true
	ticket.PrizeRedeemed = true
	h.DecrementPendingReturns()
	h.advanceTo(StatusDisbursing)
	h.maybeFinish()
	return RedeemResult{Applied: true}, nil
}

// RedeemOpenDistribution mints one open-distribution copy to the
// bidder, charging the configured price. Winners need the winner
// constraint granted; everyone else goes through the non-winner
// constraint. A configured fixed price supersedes the bid-price option.
func (c *Coordinator) RedeemOpenDistribution(auctionAddr addressing.Address, bidder uuid.UUID,
	eventSequence int64, now time.Time) (RedeemResult, error) {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return RedeemResult{}, ErrHeaderNotFound
	}
	if h.Settings.OpenDistributionPool == nil {
		return RedeemResult{}, ErrNoOpenDistribution
	}
	if !h.OpenDistributionValidated {
		return RedeemResult{}, fmt.Errorf("%w: open distribution", ErrPrizeNotValidated)
	}
	if h.Status == StatusInitialized {
		return RedeemResult{}, fmt.Errorf("%w: header not validated", ErrWrongStatus)
	}
	ended, err := c.book.HasEnded(auctionAddr, now)
	if err != nil {
		return RedeemResult{}, err
	}
	if !ended {
		return RedeemResult{}, ErrAuctionNotEnded
	}

	ticket := c.ticketFor(auctionAddr, bidder)
	if ticket.OpenDistributionRedeemed {
		return RedeemResult{}, nil
	}

	var price int64
	if _, winning := c.book.IsWinner(auctionAddr, bidder); winning {
		if h.Settings.OpenWinnerConstraint != WinnerConstraintGranted {
			return RedeemResult{}, fmt.Errorf("%w: winners not granted", ErrNotEligible)
		}
		if h.Settings.OpenDistributionPrice != nil {
			price = *h.Settings.OpenDistributionPrice
		}
	} else {
		switch h.Settings.OpenNonWinnerConstraint {
		case NonWinnerConstraintFixedPrice:
			price = *h.Settings.OpenDistributionPrice
		case NonWinnerConstraintBidPrice:
			if h.Settings.OpenDistributionPrice != nil {
				price = *h.Settings.OpenDistributionPrice
			} else {
				rec, ok := c.book.Record(auctionAddr, bidder)
				if !ok {
					return RedeemResult{}, fmt.Errorf("%w: no bid on record", ErrNotEligible)
				}
				price = rec.LastBidAmount
			}
		default:
			return RedeemResult{}, fmt.Errorf("%w: non-winners excluded", ErrNotEligible)
		}
	}

	pool, _ := c.vaults.Pool(h.Vault, *h.Settings.OpenDistributionPool)
	if err := c.metadata.MintOne(pool.Metadata); err != nil {
		return RedeemResult{}, err
	}

	a, _ := c.book.Get(auctionAddr)
	var batch *ledger.Batch
	if price > 0 {
		batch = ledger.NewBatch(eventSequence)
		batch.Add(ledger.NewBidderAccountKey(bidder, a.SettlementAsset),
			h.PaymentAccount, price, "open_distribution_price", now)
	}

	ticket.OpenDistributionRedeemed = true
	h.OpenDistributionMinted++
	h.advanceTo(StatusDisbursing)
	h.maybeFinish()
	return RedeemResult{Applied: true, Batch: batch}, nil
}

// ClaimBid sweeps a winning bidder's pot into the payment account,
// splitting out the fee and referral cut. An already-emptied pot is a
// successful no-op.
func (c *Coordinator) ClaimBid(auctionAddr addressing.Address, authority, bidder uuid.UUID,
	feeBasisPoints int64, referrer *uuid.UUID, eventSequence int64, now time.Time) (ClaimResult, error) {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return ClaimResult{}, ErrHeaderNotFound
	}
	if h.Authority != authority {
		return ClaimResult{}, fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	ended, err := c.book.HasEnded(auctionAddr, now)
	if err != nil {
		return ClaimResult{}, err
	}
	if !ended {
		return ClaimResult{}, ErrAuctionNotEnded
	}
	if _, winning := c.book.IsWinner(auctionAddr, bidder); !winning {
		return ClaimResult{}, fmt.Errorf("%w: %s", ErrNotWinner, bidder)
	}

	pot, ok := c.pots.Get(auctionAddr, bidder)
	if !ok {
		return ClaimResult{}, escrow.ErrPotNotFound
	}
	if pot.Emptied {
		return ClaimResult{}, nil
	}

	a, _ := c.book.Get(auctionAddr)
	amount := c.balances.Balance(pot.Account)
	swept, err := escrow.ComputeSweep(amount, feeBasisPoints, referrer != nil)
	if err != nil {
		return ClaimResult{}, err
	}

	var batch *ledger.Batch
	if amount > 0 {
		batch = ledger.NewBatch(eventSequence)
		if swept.Refund > 0 {
			batch.Add(pot.Account, h.PaymentAccount, swept.Refund, "claim_refund", now)
		}
		if swept.SinkFee > 0 {
			batch.Add(pot.Account, ledger.NewProtocolFeeAccountKey(a.SettlementAsset),
				swept.SinkFee, "claim_fee", now)
		}
		if swept.Referral > 0 {
			batch.Add(pot.Account, ledger.NewReferralAccountKey(*referrer, a.SettlementAsset),
				swept.Referral, "claim_referral", now)
		}
	}

	if err := c.pots.MarkEmptied(pot.PotID); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{Applied: true, Swept: swept, Batch: batch}, nil
}

// EmptyPaymentAccount drains the accumulated payment balance to the
// authority's destination wallet. An empty account is a no-op.
func (c *Coordinator) EmptyPaymentAccount(auctionAddr addressing.Address, authority,
	destination uuid.UUID, eventSequence int64, now time.Time) (*ledger.Batch, error) {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	if h.Authority != authority {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}

	balance := c.balances.Balance(h.PaymentAccount)
	if balance == 0 {
		return nil, nil
	}

	a, _ := c.book.Get(auctionAddr)
	batch := ledger.NewBatch(eventSequence)
	batch.Add(h.PaymentAccount, ledger.NewBidderAccountKey(destination, a.SettlementAsset),
		balance, "payment_withdrawal", now)
	return batch, nil
}

// ClosePot reclaims a swept pot once the auction is over
func (c *Coordinator) ClosePot(auctionAddr addressing.Address, authority, bidder uuid.UUID,
	now time.Time) error {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return ErrHeaderNotFound
	}
	if h.Authority != authority {
		return fmt.Errorf("%w: %s", ErrUnauthorized, authority)
	}
	ended, err := c.book.HasEnded(auctionAddr, now)
	if err != nil {
		return err
	}
	if !ended {
		return ErrAuctionNotEnded
	}

	pot, ok := c.pots.Get(auctionAddr, bidder)
	if !ok {
		return escrow.ErrPotNotFound
	}
	return c.pots.Close(pot.PotID)
}

// redeemPreamble runs the checks shared by the winner-prize flavors
func (c *Coordinator) redeemPreamble(auctionAddr addressing.Address, bidder uuid.UUID,
	now time.Time) (*Header, int, error) {

	h, ok := c.headerFor(auctionAddr)
	if !ok {
		return nil, 0, ErrHeaderNotFound
	}
	if h.Status == StatusInitialized {
		return nil, 0, fmt.Errorf("%w: header not validated", ErrWrongStatus)
	}
	ended, err := c.book.HasEnded(auctionAddr, now)
	if err != nil {
		return nil, 0, err
	}
	if !ended {
		return nil, 0, ErrAuctionNotEnded
	}
	rank, winning := c.book.IsWinner(auctionAddr, bidder)
	if !winning {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotWinner, bidder)
	}
	return h, rank, nil
}

// prizeForRank resolves the winner's config and state, cross-checking
// the caller-supplied prize index
func (h *Header) prizeForRank(rank int, prizeIndex uint8) (*PrizeConfig, *PrizeState, error) {
	if rank >= len(h.Settings.PrizeConfigs) {
		return nil, nil, fmt.Errorf("%w: rank %d", ErrNotWinner, rank)
	}
	cfg := &h.Settings.PrizeConfigs[rank]
	state := &h.PrizeStates[rank]
	if cfg.PrizeIndex != prizeIndex {
		return nil, nil, fmt.Errorf("%w: rank %d draws from pool %d, not %d",
			ErrPrizeMismatch, rank, cfg.PrizeIndex, prizeIndex)
	}
	if !state.Validated {
		return nil, nil, fmt.Errorf("%w: index %d", ErrPrizeNotValidated, prizeIndex)
	}
	return cfg, state, nil
}

func (c *Coordinator) headerFor(auctionAddr addressing.Address) (*Header, bool) {
	addr := addressing.Derive(addressing.NamespaceSettlement, auctionAddr[:])
	h, ok := c.headers[addr]
	return h, ok
}

func (c *Coordinator) ticketFor(auctionAddr addressing.Address, bidder uuid.UUID) *Ticket {
	key := ticketKey{Auction: auctionAddr, Bidder: bidder}
	if t, ok := c.tickets[key]; ok {
		return t
	}
	t := &Ticket{Auction: auctionAddr, Bidder: bidder}
	c.tickets[key] = t
	return t
}

// Header returns the settlement header for an auction, if present
func (c *Coordinator) Header(auctionAddr addressing.Address) (*Header, bool) {
	return c.headerFor(auctionAddr)
}

// Ticket returns the redemption ticket for (auction, bidder); absence
// means neither flavor has been redeemed
func (c *Coordinator) Ticket(auctionAddr addressing.Address, bidder uuid.UUID) (*Ticket, bool) {
	t, ok := c.tickets[ticketKey{Auction: auctionAddr, Bidder: bidder}]
	return t, ok
}

// OriginalAuthority returns the custodian recorded before a master
// record's custody moved to the header
func (c *Coordinator) OriginalAuthority(auctionAddr addressing.Address, metadataID uuid.UUID) (uuid.UUID, bool) {
	id, ok := c.originalAuthorities[authorityKey{Auction: auctionAddr, Metadata: metadataID}]
	return id, ok
}

// Headers returns every header, for snapshots and projections
func (c *Coordinator) Headers() []*Header {
	out := make([]*Header, 0, len(c.headers))
	for _, h := range c.headers {
		out = append(out, h)
	}
	return out
}

// Tickets returns every ticket, for snapshots and projections
func (c *Coordinator) Tickets() []*Ticket {
	out := make([]*Ticket, 0, len(c.tickets))
	for _, t := range c.tickets {
		out = append(out, t)
	}
	return out
}

// Count returns the number of headers
func (c *Coordinator) Count() int {
	return len(c.headers)
}

// AuthorityRecord is a serializable original-authority entry
type AuthorityRecord struct {
	Auction   addressing.Address
	Metadata  uuid.UUID
	Authority uuid.UUID
}

// OriginalAuthorities returns every recorded custodian, for snapshots
func (c *Coordinator) OriginalAuthorities() []AuthorityRecord {
	out := make([]AuthorityRecord, 0, len(c.originalAuthorities))
	for k, v := range c.originalAuthorities {
		out = append(out, AuthorityRecord{Auction: k.Auction, Metadata: k.Metadata, Authority: v})
	}
	return out
}

// RestoreHeader reinstates a header from a snapshot
func (c *Coordinator) RestoreHeader(h *Header) {
	c.headers[h.Address] = h
}

// RestoreTicket reinstates a ticket from a snapshot
func (c *Coordinator) RestoreTicket(t *Ticket) {
	c.tickets[ticketKey{Auction: t.Auction, Bidder: t.Bidder}] = t
}

// RestoreOriginalAuthority reinstates a custodian record from a snapshot
func (c *Coordinator) RestoreOriginalAuthority(rec AuthorityRecord) {
	c.originalAuthorities[authorityKey{Auction: rec.Auction, Metadata: rec.Metadata}] = rec.Authority
}
