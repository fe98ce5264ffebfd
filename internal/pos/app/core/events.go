package core

// Routing keys for sale lifecycle events published to the broker.
const (
	EventShiftOpened   = "shift.opened"
	EventShiftClosed   = "shift.closed"
	EventOrderPaid     = "order.paid"
	EventOrderCanceled = "order.canceled"
)
