package invoice

import (
	"time"

	"github.com/google/uuid"

	"shiftbill/internal/domain/billing"
)

// StaffRequirement stored staff line. Date, StartTime and EndTime are full UTC instants.
type StaffRequirement struct {
	ID        uuid.UUID        `json:"uuid"`
	RequestID uuid.UUID        `json:"request_id"`
	Position  billing.Position `json:"position"`
	Date      time.Time        `json:"date"`
	StartTime time.Time        `json:"start_time"`
	EndTime   time.Time        `json:"end_time"`
	Rate      float64          `json:"rate"`
	Count     int              `json:"count"`
	Amount    float64          `json:"amount"`
}

// Line строка в терминах калькулятора: время суток берется в поясе loc.
func (s StaffRequirement) Line(loc *time.Location) billing.StaffLine {
	return billing.StaffLine{
		ID:        s.ID.String(),
		RequestID: s.RequestID.String(),
		Position:  s.Position,
		Date:      billing.DateIn(s.StartTime, loc),
		Start:     billing.ClockOf(s.StartTime, loc),
		End:       billing.ClockOf(s.EndTime, loc),
		Rate:      s.Rate,
		Count:     s.Count,
	}
}

type CustomLineItem struct {
	ID          uuid.UUID `json:"uuid"`
	RequestID   uuid.UUID `json:"request_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Rate        float64   `json:"rate"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"created_at"`
}

// Request parent request holding client contact fields.
type Request struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	CompanyName   string    `json:"company_name"`
	EventLocation string    `json:"event_location"`
	CreatedAt     time.Time `json:"created_at"`
}

// RequestUpdate client fields editable through PUT /requests/{id}.
type RequestUpdate struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	EventLocation string `json:"event_location"`
}

type Invoice struct {
	ID                 uuid.UUID            `json:"id"`
	RequestID          uuid.UUID            `json:"request_id"`
	DueDate            *time.Time           `json:"due_date,omitempty"`
	PaymentTerms       billing.PaymentTerms `json:"payment_terms"`
	DiscountType       billing.DiscountType `json:"discount_type"`
	DiscountValue      float64              `json:"discount_value"`
	ShippingCost       float64              `json:"shipping_cost"`
	Subtotal           float64              `json:"subtotal"`
	DiscountAmount     float64              `json:"discount_amount"`
	TransactionFee     float64              `json:"transaction_fee"`
	ServiceFee         float64              `json:"service_fee"`
	Amount             float64              `json:"amount"`
	Balance            float64              `json:"balance"`
	AmountPaid         float64              `json:"amount_paid"`
	Status             billing.Status       `json:"status"`
	PONumber           string               `json:"po_number"`
	POEditCounter      int                  `json:"po_edit_counter"`
	Notes              string               `json:"notes"`
	ShipTo             string               `json:"ship_to"`
	TermsAndConditions string               `json:"terms_and_conditions"`
	PaymentIntent      string               `json:"payment_intent"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// InvoiceUpdate body of PUT /invoices/{id}. A nil PONumber keeps the stored number.
type InvoiceUpdate struct {
	DueDate            *time.Time           `json:"due_date,omitempty"`
	PaymentTerms       billing.PaymentTerms `json:"payment_terms,omitempty"`
	DiscountType       billing.DiscountType `json:"discount_type,omitempty"`
	DiscountValue      float64              `json:"discount_value" minimum:"0"`
	ShippingCost       float64              `json:"shipping_cost" minimum:"0"`
	Subtotal           float64              `json:"subtotal"`
	DiscountAmount     float64              `json:"discount_amount"`
	TransactionFee     float64              `json:"transaction_fee"`
	ServiceFee         float64              `json:"service_fee"`
	Amount             float64              `json:"amount"`
	Balance            float64              `json:"balance"`
	Status             billing.Status       `json:"status,omitempty"`
	PONumber           *string              `json:"po_number,omitempty"`
	Notes              string               `json:"notes"`
	ShipTo             string               `json:"ship_to"`
	TermsAndConditions string               `json:"terms_and_conditions"`
}

// Recomputation authoritative totals returned by PUT /rates/{requestId}.
type Recomputation struct {
	Subtotal       float64          `json:"subtotal"`
	DiscountAmount float64          `json:"discount_amount"`
	TransactionFee float64          `json:"transaction_fee"`
	ServiceFee     float64          `json:"service_fee"`
	Amount         float64          `json:"amount"`
	LineItems      []CustomLineItem `json:"line_items"`
}
