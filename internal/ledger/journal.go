package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Journal is a single double-entry movement between two accounts
type Journal struct {
	JournalID uuid.UUID
	BatchID   uuid.UUID

	DebitAccount  AccountKey
	CreditAccount AccountKey

	// Amount is always positive; direction is carried by the accounts
	Amount int64

	// Reason, e.g. "bid_escrow", "claim_fee", "claim_referral"
	Reason string

	Timestamp time.Time
}

// Batch groups the journals produced by one event. A batch applies
// atomically or not at all.
type Batch struct {
	BatchID       uuid.UUID
	EventSequence int64
	Journals      []Journal
}

// NewBatch allocates an empty batch for one event
func NewBatch(eventSequence int64) *Batch {
	return &Batch{
		BatchID:       uuid.New(),
		EventSequence: eventSequence,
	}
}

// Add appends a journal bound to this batch
func (b *Batch) Add(debit, credit AccountKey, amount int64, reason string, ts time.Time) {
	b.Journals = append(b.Journals, Journal{
		JournalID:     uuid.New(),
		BatchID:       b.BatchID,
		DebitAccount:  debit,
		CreditAccount: credit,
		Amount:        amount,
		Reason:        reason,
		Timestamp:     ts,
	})
}

// Validate checks batch invariants before apply
func (b *Batch) Validate() error {
	for i, j := range b.Journals {
		if j.Amount <= 0 {
			return fmt.Errorf("journal %d: amount must be positive, got %d", i, j.Amount)
		}
		if j.BatchID != b.BatchID {
			return fmt.Errorf("journal %d: batch id mismatch", i)
		}
		if j.DebitAccount == j.CreditAccount {
			return fmt.Errorf("journal %d: debit and credit accounts are identical (%s)",
				i, j.DebitAccount.AccountPath())
		}
	}
	return nil
}
