package auction

// Phase is the auction lifecycle phase
type Phase int32

const (
	PhaseCreated Phase = iota
	PhaseStarted
	PhaseBuyNowStarted
	PhaseEnded
	PhaseBuyNowEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "Created"
	case PhaseStarted:
		return "Started"
	case PhaseBuyNowStarted:
		return "BuyNowStarted"
	case PhaseEnded:
		return "Ended"
	case PhaseBuyNowEnded:
		return "BuyNowEnded"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether bidding is permanently closed
func (p Phase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseBuyNowEnded
}

// IsBidding reports whether the auction accepts bids
func (p Phase) IsBidding() bool {
	return p == PhaseStarted || p == PhaseBuyNowStarted
}

// CanTransitionTo validates phase transitions
func (p Phase) CanTransitionTo(target Phase) bool {
	allowed := map[Phase][]Phase{
		// Created may end directly by authority action
		PhaseCreated: {PhaseStarted, PhaseBuyNowStarted, PhaseEnded},
		// A live phase restarts in place while no bids are admitted
		PhaseStarted:       {PhaseStarted, PhaseEnded},
		PhaseBuyNowStarted: {PhaseBuyNowStarted, PhaseBuyNowEnded},
		// Terminal phases may restart if no live bids remain
		PhaseEnded:       {PhaseStarted, PhaseBuyNowStarted},
		PhaseBuyNowEnded: {PhaseBuyNowStarted},
	}
	for _, t := range allowed[p] {
		if t == target {
			return true
		}
	}
	return false
}
