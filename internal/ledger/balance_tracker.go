package ledger

import (
	"fmt"
	"sort"
)

// BalanceTracker holds in-memory account balances. It is owned by the
// single-threaded core and needs no locking.
type BalanceTracker struct {
	balances map[AccountKey]int64
}

func NewBalanceTracker() *BalanceTracker {
	return &BalanceTracker{
		balances: make(map[AccountKey]int64),
	}
}

// ApplyBatch posts every journal in the batch. Internal accounts must
// never go negative; a violation means funds were invented and the
// process halts rather than persist a corrupt state.
func (bt *BalanceTracker) ApplyBatch(batch *Batch) {
	for _, j := range batch.Journals {
		bt.balances[j.DebitAccount] -= j.Amount
		bt.balances[j.CreditAccount] += j.Amount

		if j.DebitAccount.Scope != "bidder" && bt.balances[j.DebitAccount] < 0 {
			panic(fmt.Sprintf("FATAL: account %s overdrawn to %d by journal %s (%s)",
				j.DebitAccount.AccountPath(), bt.balances[j.DebitAccount],
				j.JournalID, j.Reason))
		}
	}
}

// Balance returns the current tracked balance for an account
func (bt *BalanceTracker) Balance(key AccountKey) int64 {
	return bt.balances[key]
}

// TotalImbalance sums all tracked balances. Double entry keeps this at
// zero; anything else is corruption.
func (bt *BalanceTracker) TotalImbalance() int64 {
	var total int64
	for _, v := range bt.balances {
		total += v
	}
	return total
}

// SetBalance writes a balance directly; used only during snapshot
// restore
func (bt *BalanceTracker) SetBalance(key AccountKey, balance int64) {
	bt.balances[key] = balance
}

// Snapshot returns a copy of all non-zero balances
func (bt *BalanceTracker) Snapshot() map[AccountKey]int64 {
	out := make(map[AccountKey]int64, len(bt.balances))
	for k, v := range bt.balances {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// DigestRows returns balances in deterministic order for state hashing
func (bt *BalanceTracker) DigestRows() []string {
	rows := make([]string, 0, len(bt.balances))
	for k, v := range bt.balances {
		if v != 0 {
			rows = append(rows, fmt.Sprintf("%s=%d", k.AccountPath(), v))
		}
	}
	sort.Strings(rows)
	return rows
}
