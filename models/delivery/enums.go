package delivery

// Status values for physical custody of the package.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus values for the escrow-like fund lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentInEscrow PaymentStatus = "in_escrow"
	PaymentReleased PaymentStatus = "released"
	PaymentRefunded PaymentStatus = "refunded"
)

// statusTransitions is the closed set of legal custody transitions.
// Cancellation is only possible before the traveler takes custody.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// paymentTransitions is the closed set of legal fund transitions.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentInEscrow},
	PaymentInEscrow: {PaymentReleased, PaymentRefunded},
	PaymentReleased: {},
	PaymentRefunded: {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal returns true if no further custody transition is possible.
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (ps PaymentStatus) String() string {
	return string(ps)
}

func (ps PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[ps]
	return ok
}

// IsTerminal returns true if no further fund transition is possible.
func (ps PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[ps]) == 0 && ps.IsValid()
}

// CanTransitionTo reports whether moving from ps to next is legal.
func (ps PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[ps] {
		if allowed == next {
			return true
		}
	}
	return false
}
