package domain

import "time"

// Order statuses. The UI presents these as a forward progression but the
// update endpoint accepts any target, including backward moves.
const (
	StatusPending    = "pending"
	StatusDC         = "dc"
	StatusInvoice    = "invoice"
	StatusDispatched = "dispatched"
)

// Payment conditions (credit terms).
const (
	PayImmediate = "immediate"
	PayDays15    = "days15"
	PayDays30    = "days30"
)

type OrderItem struct {
	ProductID   string  `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
}

// Order timestamps are RFC3339 UTC strings; empty string means unset
// (dispatch_date, paid_at and assigned_to are nullable in storage).
type Order struct {
	ID               string      `db:"id" json:"id"`
	CustomerName     string      `db:"customer_name" json:"customerName"`
	CustomerEmail    string      `db:"customer_email" json:"customerEmail"`
	CustomerPhone    string      `db:"customer_phone" json:"customerPhone"`
	Items            []OrderItem `db:"-" json:"items"`
	Total            float64     `db:"total" json:"total"`
	Status           string      `db:"status" json:"status"`
	PaymentCondition string      `db:"payment_condition" json:"paymentCondition"`
	IsPaid           bool        `db:"is_paid" json:"isPaid"`
	PaidAt           string      `db:"paid_at" json:"paidAt,omitempty"`
	DispatchDate     string      `db:"dispatch_date" json:"dispatchDate,omitempty"`
	AssignedTo       string      `db:"assigned_to" json:"assignedTo,omitempty"`
	Notes            string      `db:"notes" json:"notes,omitempty"`
	OrderImage       string      `db:"order_image" json:"orderImage,omitempty"`
	CreatedBy        string      `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt        string      `db:"created_at" json:"createdAt"`
	UpdatedAt        string      `db:"updated_at" json:"updatedAt,omitempty"`

	// Derived, never stored. See PaymentPending.
	PaymentPending bool `db:"-" json:"paymentPending"`
}

// PaymentPending reports whether an order should carry a pending-payment
// warning: dispatched, unpaid, and past the grace period of its credit term.
// Pure function of its inputs; dispatchDate is an RFC3339 string as stored.
func PaymentPending(status string, isPaid bool, paymentCondition, dispatchDate string, now time.Time) bool {
	if status != StatusDispatched || isPaid || dispatchDate == "" {
		return false
	}
	d, err := time.Parse(time.RFC3339, dispatchDate)
	if err != nil {
		return false
	}
	switch paymentCondition {
	case PayImmediate:
		return true
	case PayDays15:
		return !now.Before(d.AddDate(0, 0, 15))
	case PayDays30:
		return !now.Before(d.AddDate(0, 0, 30))
	default:
		return false
	}
}

// Derive fills the computed fields on an order.
func (o *Order) Derive(now time.Time) {
	o.PaymentPending = PaymentPending(o.Status, o.IsPaid, o.PaymentCondition, o.DispatchDate, now)
}
