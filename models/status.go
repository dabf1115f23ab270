package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing     OrderStatus = "Processing"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// validTransitions is the authoritative state machine definition. Statuses move
// strictly forward; Cancelled is reachable from any non-terminal state and an
// order never leaves Delivered or Cancelled.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing:     {StatusShipped, StatusOutForDelivery, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range validTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// TerminalStatuses lists the states excluded when querying for active orders.
func TerminalStatuses() []string {
	return []string{string(StatusDelivered), string(StatusCancelled)}
}
