package models

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

type OrderStatus string

const (
	OrderOpen     OrderStatus = "OPEN"
	OrderPaid     OrderStatus = "PAID"
	OrderCanceled OrderStatus = "CANCELED"
)

// CanTransition reports whether a shift may move from s to next.
// The only legal transition is OPEN -> CLOSED; CLOSED is terminal.
func (s ShiftStatus) CanTransition(next ShiftStatus) bool {
	return s == ShiftOpen && next == ShiftClosed
}

// CanTransition reports whether an order may move from s to next.
// OPEN may finalize to PAID or CANCELED; both terminal states accept nothing.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s != OrderOpen {
		return false
	}
	return next == OrderPaid || next == OrderCanceled
}

// Terminal reports whether no further mutation of the order is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderPaid || s == OrderCanceled
}
