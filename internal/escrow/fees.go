package escrow

import (
	"errors"
	"fmt"
)

// ReferralSharePercent is the referrer's cut of the protocol fee
const ReferralSharePercent = 20

// BasisPointDivisor converts basis points to a fraction
const BasisPointDivisor = 10000

var ErrBadFeeRate = errors.New("fee basis points out of range")

// Sweep is the split of a swept pot balance
type Sweep struct {
	// Refund goes to the seller's destination
	Refund int64

	// SinkFee goes to the protocol fee sink (fee minus referral)
	SinkFee int64

	// Referral goes to the referrer, zero when none was supplied
	Referral int64
}

// Total returns the amount the sweep consumes. Always equals the input
// amount; the split conserves value.
func (s Sweep) Total() int64 {
	return s.Refund + s.SinkFee + s.Referral
}

// ComputeSweep splits a pot balance into refund, protocol fee, and
// referral cut. Multiplication overflow here means amounts far outside
// any legitimate range, a bookkeeping corruption, and halts the
// process.
func ComputeSweep(amount, feeBasisPoints int64, hasReferrer bool) (Sweep, error) {
	if feeBasisPoints < 0 || feeBasisPoints > BasisPointDivisor {
		return Sweep{}, fmt.Errorf("%w: %d", ErrBadFeeRate, feeBasisPoints)
	}
	if amount < 0 {
		panic(fmt.Sprintf("FATAL: negative pot balance %d in sweep", amount))
	}

	fee := mulDiv(amount, feeBasisPoints, BasisPointDivisor)
	var referral int64
	if hasReferrer {
		referral = mulDiv(fee, ReferralSharePercent, 100)
	}

	return Sweep{
		Refund:   amount - fee,
		SinkFee:  fee - referral,
		Referral: referral,
	}, nil
}

func mulDiv(a, b, div int64) int64 {
	if b != 0 && a > (1<<62)/b {
		panic(fmt.Sprintf("FATAL: fee arithmetic overflow: %d * %d", a, b))
	}
	return a * b / div
}
