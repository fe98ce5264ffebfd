package core

// WaitTime is the per-request and shutdown timeout in seconds.
const WaitTime = 10

// RecentOrdersDefault and RecentOrdersMax bound the recent-paid-orders query.
const (
	RecentOrdersDefault = 3
	RecentOrdersMax     = 50
)

type ServerParams struct {
	Port int
}
