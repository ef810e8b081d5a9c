package domain

import "github.com/google/uuid"

// OrderType discriminates the order kinds the repository manages. Only cart
// mutations are relevant to co-shopping, the notifier ignores the rest.
type OrderType string

const (
	OrderTypeCart          OrderType = "Cart"
	OrderTypePurchaseOrder OrderType = "PurchaseOrder"
	OrderTypePaymentPlan   OrderType = "PaymentPlan"
)

// MutationKind replaces the original's dynamic property-bag notifications
// with a closed set of tags.
type MutationKind string

const (
	MutationCreated  MutationKind = "Created"
	MutationUpdated  MutationKind = "Updated"
	MutationDeleting MutationKind = "Deleting"
	MutationDeleted  MutationKind = "Deleted"
)

// OrderReference identifies the order a mutation touched.
type OrderReference struct {
	Type       OrderType
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Name       string
}

// OrderMutation is the tagged variant delivered to order callbacks.
type OrderMutation struct {
	Kind      MutationKind
	Reference OrderReference
}
