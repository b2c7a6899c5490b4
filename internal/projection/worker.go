package projection

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// ProjectionOutput mirrors the data needed by projection workers.
// The orchestrator bridges between core.CoreOutput and this.
type ProjectionOutput struct {
	Sequence       int64
	EventType      string
	AuctionID      *string
	JournalEntries []JournalEntry
	Timestamp      int64
}

// JournalEntry is a simplified journal for projection consumption.
type JournalEntry struct {
	DebitAccount  string
	CreditAccount string
	AssetID       string
	Amount        int64
	Reason        string
}

// ProjectionWorker updates projection tables from processed events.
// The projection channel is non-blocking with drop: if projections
// fall behind, they can be rebuilt from the event log.
type ProjectionWorker struct {
	db         *sql.DB
	inputChan  <-chan ProjectionOutput
	bidHistory *BidHistoryProjection
	lastSeq    int64
}

func NewProjectionWorker(db *sql.DB, inputChan <-chan ProjectionOutput) *ProjectionWorker {
	return &ProjectionWorker{
		db:         db,
		inputChan:  inputChan,
		bidHistory: NewBidHistoryProjection(),
	}
}

// BidHistory exposes the in-memory bid history for query serving.
func (pw *ProjectionWorker) BidHistory() *BidHistoryProjection {
	return pw.bidHistory
}

// Run starts the projection worker loop.
func (pw *ProjectionWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case output, ok := <-pw.inputChan:
			if !ok {
				return nil
			}

			if err := pw.processOutput(ctx, output); err != nil {
				log.Printf("WARN: projection update failed at seq=%d: %v", output.Sequence, err)
				// Continue — projections are eventually consistent
				// and can be rebuilt from the event log
			}

			pw.lastSeq = output.Sequence
		}
	}
}

func (pw *ProjectionWorker) processOutput(ctx context.Context, output ProjectionOutput) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Update balance projections from journal entries
	for _, j := range output.JournalEntries {
		if err := pw.updateBalanceProjection(ctx, tx, j); err != nil {
			return fmt.Errorf("balance projection: %w", err)
		}
	}

	if err := pw.updateBidHistory(ctx, tx, output); err != nil {
		return fmt.Errorf("bid history projection: %w", err)
	}

	// Update projection watermark
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projections.watermark (worker_id, last_sequence, updated_at)
		VALUES ('main', $1, NOW())
		ON CONFLICT (worker_id) DO UPDATE SET last_sequence = $1, updated_at = NOW()
	`, output.Sequence); err != nil {
		return fmt.Errorf("watermark update: %w", err)
	}

	return tx.Commit()
}

func (pw *ProjectionWorker) updateBalanceProjection(ctx context.Context, tx *sql.Tx, j JournalEntry) error {
	// Debit account: decrease balance
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projections.balances (account_path, asset_id, balance, last_sequence)
		VALUES ($1, $2, -$3, $4)
		ON CONFLICT (account_path, asset_id)
		DO UPDATE SET balance = projections.balances.balance - $3, last_sequence = $4
	`, j.DebitAccount, j.AssetID, j.Amount, pw.lastSeq); err != nil {
		return err
	}

	// Credit account: increase balance
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projections.balances (account_path, asset_id, balance, last_sequence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_path, asset_id)
		DO UPDATE SET balance = projections.balances.balance + $3, last_sequence = $4
	`, j.CreditAccount, j.AssetID, j.Amount, pw.lastSeq); err != nil {
		return err
	}

	return nil
}

// updateBidHistory records escrow movements under an auction as bid
// activity, both in projections.bid_history and the in-memory view.
func (pw *ProjectionWorker) updateBidHistory(ctx context.Context, tx *sql.Tx, output ProjectionOutput) error {
	if output.AuctionID == nil {
		return nil
	}

	for _, j := range output.JournalEntries {
		var action string
		switch j.Reason {
		case "bid_escrow":
			action = "escrow"
		case "bid_refund", "claim_refund":
			action = "refund"
		default:
			continue
		}

		// Bidder wallet paths look like "bidder:<hex>:wallet:<asset>"
		wallet := j.DebitAccount
		if action != "escrow" {
			wallet = j.CreditAccount
		}
		if !strings.HasPrefix(wallet, "bidder:") {
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projections.bid_history
				(sequence, auction_id, bidder_account, asset_id, amount, action, event_type, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (sequence, bidder_account, action) DO NOTHING
		`, output.Sequence, *output.AuctionID, wallet, j.AssetID, j.Amount, action, output.EventType); err != nil {
			return err
		}

		pw.bidHistory.AddEntry(BidHistoryEntry{
			Sequence:      output.Sequence,
			AuctionID:     *output.AuctionID,
			BidderAccount: wallet,
			AssetID:       j.AssetID,
			Amount:        j.Amount,
			Action:        action,
			Timestamp:     output.Timestamp,
		})
	}

	return nil
}

// RebuildProjections rebuilds all projection tables from the event log.
func RebuildProjections(ctx context.Context, db *sql.DB) error {
	// Truncate all projection tables
	truncateStatements := []string{
		`TRUNCATE projections.balances`,
		`TRUNCATE projections.bid_history`,
		`DELETE FROM projections.watermark WHERE worker_id = 'main'`,
	}

	for _, stmt := range truncateStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("truncate failed: %w", err)
		}
	}

	// Rebuild from journal entries
	_, err := db.ExecContext(ctx, `
		INSERT INTO projections.balances (account_path, asset_id, balance, last_sequence)
		SELECT
			credit_account AS account_path,
			asset_id,
			SUM(amount) AS balance,
			MAX(sequence) AS last_sequence
		FROM event_log.journal
		GROUP BY credit_account, asset_id
		ON CONFLICT (account_path, asset_id) DO UPDATE
			SET balance = EXCLUDED.balance, last_sequence = EXCLUDED.last_sequence
	`)
	if err != nil {
		return fmt.Errorf("rebuild credit balances: %w", err)
	}

	// Subtract debits
	_, err = db.ExecContext(ctx, `
		INSERT INTO projections.balances (account_path, asset_id, balance, last_sequence)
		SELECT
			debit_account AS account_path,
			asset_id,
			-SUM(amount) AS balance,
			MAX(sequence) AS last_sequence
		FROM event_log.journal
		GROUP BY debit_account, asset_id
		ON CONFLICT (account_path, asset_id) DO UPDATE
			SET balance = projections.balances.balance + EXCLUDED.balance,
			    last_sequence = GREATEST(projections.balances.last_sequence, EXCLUDED.last_sequence)
	`)
	if err != nil {
		return fmt.Errorf("rebuild debit balances: %w", err)
	}

	log.Println("INFO: projection rebuild complete")
	return nil
}
