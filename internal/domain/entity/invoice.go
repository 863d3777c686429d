package entity

import "time"

// TaxRate is the VAT rate applied to every invoice subtotal
const TaxRate = 0.20

// InvoiceItem is a single priced line on an invoice
type InvoiceItem struct {
	Description string  `json:"description" bson:"description"`
	Amount      float64 `json:"amount" bson:"amount"`
}

// Invoice is the bill generated once a booking's work is finished. At most
// one invoice exists per booking id.
type Invoice struct {
	ID          string        `json:"id" bson:"_id"`
	BookingID   string        `json:"bookingId" bson:"bookingId"`
	Items       []InvoiceItem `json:"items" bson:"items"`
	Subtotal    float64       `json:"subtotal" bson:"subtotal"`
	Tax         float64       `json:"tax" bson:"tax"`
	Total       float64       `json:"total" bson:"total"`
	Paid        bool          `json:"paid" bson:"paid"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty" bson:"paymentDate,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
}

// Totalize recomputes subtotal, tax and total from the line items
func (i *Invoice) Totalize() {
	var subtotal float64
	for _, item := range i.Items {
		subtotal += item.Amount
	}
	i.Subtotal = subtotal
	i.Tax = subtotal * TaxRate
	i.Total = i.Subtotal + i.Tax
}
