package query

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"AuctionLedger/internal/addressing"
	"AuctionLedger/internal/ledger"
)

// QueryService provides read-only access to projection tables. Queries
// are served via gRPC and HTTP/JSON (gRPC-Gateway), reading from
// PostgreSQL projection tables. All responses include as_of_sequence
// for freshness semantics.
type QueryService struct {
	db *sql.DB
}

func NewQueryService(db *sql.DB) *QueryService {
	return &QueryService{db: db}
}

// GetBidderBalance returns a bidder's wallet and referral balances for
// a specific asset.
func (qs *QueryService) GetBidderBalance(
	ctx context.Context,
	bidderID uuid.UUID,
	asset string,
) (*BidderBalanceResponse, error) {
	asOfSeq, err := qs.getWatermark(ctx)
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}

	walletPath := ledger.NewBidderAccountKey(bidderID, asset).AccountPath()
	wallet, err := qs.getProjectedBalance(ctx, walletPath)
	if err != nil {
		return nil, err
	}

	referralPath := ledger.NewReferralAccountKey(bidderID, asset).AccountPath()
	referral, err := qs.getProjectedBalance(ctx, referralPath)
	if err != nil {
		return nil, err
	}

	return &BidderBalanceResponse{
		BidderID:        bidderID,
		Asset:           asset,
		WalletBalance:   wallet,
		ReferralRewards: referral,
		WalletDisplay:   DisplayAmount(wallet),
		ReferralDisplay: DisplayAmount(referral),
		AsOfSequence:    asOfSeq,
	}, nil
}

// GetAuctionSummary returns the payment-account balance and bid
// activity for one auction.
func (qs *QueryService) GetAuctionSummary(
	ctx context.Context,
	auctionID string,
	asset string,
) (*AuctionSummaryResponse, error) {
	asOfSeq, err := qs.getWatermark(ctx)
	if err != nil {
		return nil, err
	}

	addr, err := addressing.Parse(auctionID)
	if err != nil {
		return nil, fmt.Errorf("parse auction id: %w", err)
	}

	paymentPath := ledger.NewPaymentAccountKey(addr, asset).AccountPath()
	payment, err := qs.getProjectedBalance(ctx, paymentPath)
	if err != nil {
		return nil, err
	}

	var bidEntries, lastBidSeq sql.NullInt64
	err = qs.db.QueryRowContext(ctx, `
		SELECT COUNT(*), MAX(sequence)
		FROM projections.bid_history
		WHERE auction_id = $1
	`, auctionID).Scan(&bidEntries, &lastBidSeq)
	if err != nil {
		return nil, err
	}

	return &AuctionSummaryResponse{
		AuctionID:       auctionID,
		Asset:           asset,
		PaymentBalance:  payment,
		PaymentDisplay:  DisplayAmount(payment),
		BidEntries:      bidEntries.Int64,
		LastBidSequence: lastBidSeq.Int64,
		AsOfSequence:    asOfSeq,
	}, nil
}

// GetBidHistory returns escrow movements for an auction. Supports
// cursor-based pagination on sequence.
func (qs *QueryService) GetBidHistory(
	ctx context.Context,
	auctionID string,
	limit int,
	afterSequence *int64,
) ([]BidHistoryResponse, error) {
	asOfSeq, err := qs.getWatermark(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT sequence, bidder_account, asset_id, amount, action, event_type
		FROM projections.bid_history
		WHERE auction_id = $1
	`
	args := []interface{}{auctionID}
	argIdx := 2

	if afterSequence != nil {
		query += fmt.Sprintf(" AND sequence < $%d", argIdx)
		args = append(args, *afterSequence)
		argIdx++
	}

	query += " ORDER BY sequence DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := qs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []BidHistoryResponse
	for rows.Next() {
		var h BidHistoryResponse
		h.AuctionID = auctionID
		h.AsOfSequence = asOfSeq
		if err := rows.Scan(
			&h.Sequence, &h.BidderAccount, &h.AssetID, &h.Amount,
			&h.Action, &h.EventType,
		); err != nil {
			return nil, err
		}
		h.AmountDisplay = DisplayAmount(h.Amount)
		history = append(history, h)
	}

	return history, rows.Err()
}

// GetJournalHistory returns journal entries touching a bidder's
// accounts, with pagination.
func (qs *QueryService) GetJournalHistory(
	ctx context.Context,
	bidderID uuid.UUID,
	limit int,
	afterSequence *int64,
) ([]JournalHistoryEntry, error) {
	var entity [32]byte
	copy(entity[:16], bidderID[:])
	accountPrefix := fmt.Sprintf("bidder:%x:%%", entity)

	query := `
		SELECT journal_id, batch_id, sequence,
		       debit_account, credit_account, asset_id, amount, reason, timestamp
		FROM event_log.journal
		WHERE debit_account LIKE $1 OR credit_account LIKE $1
	`
	args := []interface{}{accountPrefix}
	argIdx := 2

	if afterSequence != nil {
		query += fmt.Sprintf(" AND sequence < $%d", argIdx)
		args = append(args, *afterSequence)
		argIdx++
	}

	query += " ORDER BY sequence DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)

	rows, err := qs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalHistoryEntry
	for rows.Next() {
		var e JournalHistoryEntry
		if err := rows.Scan(
			&e.JournalID, &e.BatchID, &e.Sequence,
			&e.DebitAccount, &e.CreditAccount, &e.AssetID, &e.Amount,
			&e.Reason, &e.Timestamp,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetProtocolFees returns the store-wide fee sink balance for an asset.
func (qs *QueryService) GetProtocolFees(ctx context.Context, asset string) (int64, string, error) {
	path := ledger.NewProtocolFeeAccountKey(asset).AccountPath()
	balance, err := qs.getProjectedBalance(ctx, path)
	if err != nil {
		return 0, "", err
	}
	return balance, DisplayAmount(balance), nil
}

// --- Admin APIs ---

// VerifyIntegrity checks hash chain and global balance invariants.
func (qs *QueryService) VerifyIntegrity(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{}

	// Check hash chain continuity
	rows, err := qs.db.QueryContext(ctx, `
		SELECT e1.sequence, e1.prev_hash, e2.state_hash
		FROM event_log.events e1
		LEFT JOIN event_log.events e2 ON e2.sequence = e1.sequence - 1
		WHERE e1.sequence > 0 AND e1.prev_hash != COALESCE(e2.state_hash, e1.prev_hash)
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seq int64
		var prevHash, expectedHash []byte
		if err := rows.Scan(&seq, &prevHash, &expectedHash); err != nil {
			return nil, err
		}
		report.HashChainBreaks = append(report.HashChainBreaks, seq)
	}

	// Check global balance (should sum to zero across all accounts per asset)
	balanceRows, err := qs.db.QueryContext(ctx, `
		SELECT asset_id, SUM(balance) as total
		FROM projections.balances
		GROUP BY asset_id
		HAVING SUM(balance) != 0
	`)
	if err != nil {
		return nil, err
	}
	defer balanceRows.Close()

	for balanceRows.Next() {
		var assetID string
		var total int64
		if err := balanceRows.Scan(&assetID, &total); err != nil {
			return nil, err
		}
		report.UnbalancedAssets = append(report.UnbalancedAssets, UnbalancedAsset{
			AssetID:   assetID,
			Imbalance: total,
		})
	}

	report.IsHealthy = len(report.HashChainBreaks) == 0 && len(report.UnbalancedAssets) == 0
	return report, nil
}

// --- helpers ---

func (qs *QueryService) getWatermark(ctx context.Context) (int64, error) {
	var seq int64
	err := qs.db.QueryRowContext(ctx, `
		SELECT COALESCE(last_sequence, 0) FROM projections.watermark WHERE worker_id = 'main'
	`).Scan(&seq)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return seq, err
}

func (qs *QueryService) getProjectedBalance(ctx context.Context, accountPath string) (int64, error) {
	var balance int64
	err := qs.db.QueryRowContext(ctx, `
		SELECT COALESCE(balance, 0) FROM projections.balances
		WHERE account_path = $1
	`, accountPath).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return balance, err
}
