package settlement

// Status is the coarse disbursement status on a settlement header.
// It only ever moves forward.
type Status int32

const (
	StatusInitialized Status = iota
	StatusValidated
	StatusRunning
	StatusDisbursing
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "Initialized"
	case StatusValidated:
		return "Validated"
	case StatusRunning:
		return "Running"
	case StatusDisbursing:
		return "Disbursing"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// CanTransitionTo validates status transitions
func (s Status) CanTransitionTo(target Status) bool {
	allowed := map[Status][]Status{
		StatusInitialized: {StatusValidated},
		StatusValidated:   {StatusRunning, StatusDisbursing},
		StatusRunning:     {StatusDisbursing},
		StatusDisbursing:  {StatusFinished},
	}
	for _, t := range allowed[s] {
		if t == target {
			return true
		}
	}
	return false
}

// PrizeKind is the redemption class of a prize slot
type PrizeKind int32

const (
	PrizeKindDirect PrizeKind = iota
	PrizeKindMasterRecord
	PrizeKindLimitedEdition
)

func (k PrizeKind) String() string {
	switch k {
	case PrizeKindDirect:
		return "Direct"
	case PrizeKindMasterRecord:
		return "MasterRecord"
	case PrizeKindLimitedEdition:
		return "LimitedEdition"
	default:
		return "Unknown"
	}
}

// WinnerConstraint governs whether ranked winners receive the open
// distribution
type WinnerConstraint int32

const (
	WinnerConstraintNone WinnerConstraint = iota
	WinnerConstraintGranted
)

// NonWinnerConstraint governs open-distribution access for everyone
// else, and what they pay
type NonWinnerConstraint int32

const (
	NonWinnerConstraintNone NonWinnerConstraint = iota
	NonWinnerConstraintFixedPrice
	NonWinnerConstraintBidPrice
)
