package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// transitions is the full order state machine. Cancelled and Delivered are
// terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Address is copied into the order at creation time. Later edits to the
// user's saved addresses never touch historical orders.
type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	// ProductName and SKU are snapshots taken when the order was created;
	// the catalog may change afterwards.
	ProductName string
	SKU         string
	Quantity    int32
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

type Order struct {
	ID          string
	OrderNumber string
	UserID      string
	Status      Status

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal

	ShippingAddress Address
	BillingAddress  Address

	Items []OrderItem

	OrderDate   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
