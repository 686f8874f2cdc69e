package order

import "time"

const (
	// Collection backs orders, ItemsCollection their line items.
	Collection      = "orders"
	ItemsCollection = "order_items"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports membership in the status enumeration. There is no
// transition table: an admin may set any valid status at any time.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the address snapshot frozen onto an order.
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Customer identifies who placed an order. A zero UserID means a guest
// checkout carrying contact fields only; there is no derived pseudo-user.
type Customer struct {
	UserID string
	Name   string
	Email  string
}

func (c Customer) Guest() bool {
	return c.UserID == ""
}

type Order struct {
	ID         string          `json:"id"`
	Total      float64         `json:"total"`
	Status     Status          `json:"status"`
	Shipping   ShippingAddress `json:"shipping"`
	UserID     string          `json:"user,omitempty"`
	GuestName  string          `json:"guest_name,omitempty"`
	GuestEmail string          `json:"guest_email,omitempty"`
	Created    time.Time       `json:"created"`
	Updated    time.Time       `json:"updated"`
}

// Item is one order line. The unit price is the effective price at time of
// purchase and never changes afterwards.
type Item struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order"`
	ProductID   string  `json:"product"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type NewOrder struct {
	Total    float64
	Shipping ShippingAddress
	Customer Customer
}

type NewItem struct {
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
}
