package billing

import (
	"slices"
	"time"
)

// StaffLine is one staffing requirement of a request.
// An empty ID marks a line not yet saved on the server.
type StaffLine struct {
	ID        string
	RequestID string
	Position  Position
	Date      time.Time
	Start     Clock
	End       Clock
	Rate      float64
	Count     int
	Amount    float64
}

// Hours returns the shift length.
func (l StaffLine) Hours() float64 {
	return HoursBetween(l.Start, l.End)
}

// CustomLine is a free-form invoice line priced as quantity × rate.
type CustomLine struct {
	ID          string
	RequestID   string
	Description string
	Quantity    int
	Rate        float64
	Total       float64
}

// Invoice is an invoice together with the client fields of its parent request.
type Invoice struct {
	ID        string
	RequestID string

	FirstName     string
	LastName      string
	Email         string
	CompanyName   string
	EventLocation string

	DueDate      time.Time
	PaymentTerms PaymentTerms

	DiscountType   DiscountType
	DiscountValue  float64
	ShippingCost   float64
	Subtotal       float64
	DiscountAmount float64
	ServiceFee     float64
	TransactionFee float64
	Amount         float64
	Balance        float64
	AmountPaid     float64
	Status         Status

	PONumber      string
	POEditCounter int

	Notes              string
	ShipTo             string
	TermsAndConditions string
	PaymentIntent      string
}

// POLocked reports whether the PO number was already changed and is now read-only.
func (i Invoice) POLocked() bool {
	return i.POEditCounter >= 1
}

// ApplyTotals copies t into the invoice. The balance accounts for the amount already paid.
func (i *Invoice) ApplyTotals(t Totals) {
	i.Subtotal = t.Subtotal
	i.DiscountAmount = t.DiscountAmount
	i.TransactionFee = t.TransactionFee
	i.ServiceFee = t.ServiceFee
	i.Amount = t.GrandTotal
	i.Balance = t.Balance(i.AmountPaid)
}

// Bundle is an invoice with all lines of its request.
type Bundle struct {
	Invoice Invoice
	Staff   []StaffLine
	Custom  []CustomLine
}

// Clone returns a deep copy that shares no line slices with b.
func (b Bundle) Clone() Bundle {
	return Bundle{
		Invoice: b.Invoice,
		Staff:   slices.Clone(b.Staff),
		Custom:  slices.Clone(b.Custom),
	}
}

// Recalculate refreshes line amounts and invoice totals.
func (b *Bundle) Recalculate() Totals {
	for i := range b.Staff {
		b.Staff[i].Amount = StaffLineAmount(b.Staff[i])
	}
	for i := range b.Custom {
		b.Custom[i].Total = CustomLineTotal(b.Custom[i])
	}
	t := Aggregate(b.Staff, b.Custom, b.Invoice.DiscountType, b.Invoice.DiscountValue, b.Invoice.ShippingCost)
	b.Invoice.ApplyTotals(t)
	return t
}
