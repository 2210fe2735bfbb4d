package session

type PaymentState string

const (
	PaymentUnpaid   PaymentState = "unpaid"
	PaymentPaid     PaymentState = "paid"
	PaymentLiveCall PaymentState = "live_call"
	PaymentRefunded PaymentState = "refunded"
)

func (p PaymentState) String() string {
	return string(p)
}

func (p PaymentState) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentLiveCall, PaymentRefunded:
		return true
	default:
		return false
	}
}

// CanReveal reports whether reveals are gated open. Live-call sessions waive
// the payment gate because the reading happens during an already-paid call.
func (p PaymentState) CanReveal() bool {
	return p == PaymentPaid || p == PaymentLiveCall
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusClosed:
		return true
	default:
		return false
	}
}

type SlotState string

const (
	SlotHidden   SlotState = "hidden"
	SlotRevealed SlotState = "revealed"
	SlotBurned   SlotState = "burned"
)

func (s SlotState) String() string {
	return string(s)
}

func (s SlotState) IsValid() bool {
	switch s {
	case SlotHidden, SlotRevealed, SlotBurned:
		return true
	default:
		return false
	}
}

// IsTerminal: revealed and burned slots never change again.
func (s SlotState) IsTerminal() bool {
	return s == SlotRevealed || s == SlotBurned
}

// CanTransitionTo encodes the monotonic rule: the only legal transitions are
// hidden->revealed and hidden->burned.
func (s SlotState) CanTransitionTo(next SlotState) bool {
	return s == SlotHidden && (next == SlotRevealed || next == SlotBurned)
}
