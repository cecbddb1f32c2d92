package schema

import (
	"time"

	"shiftbill/internal/domain/billing"
)

// StaffPayload тело POST/PUT /staff-requirements. Все моменты времени в UTC.
type StaffPayload struct {
	RequestID string    `json:"request_id"`
	Position  string    `json:"position"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Rate      float64   `json:"rate"`
	Count     int       `json:"count"`
	Amount    float64   `json:"amount"`
}

// CustomLinePayload элемент тела PUT /rates/{requestId}.
type CustomLinePayload struct {
	UUID        string  `json:"uuid,omitempty"`
	RequestID   string  `json:"request_id,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// RequestPayload тело PUT /requests/{id}. Номер PO сюда не входит.
type RequestPayload struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	CompanyName   string `json:"company_name"`
	EventLocation string `json:"event_location"`
}

// InvoicePayload тело PUT /invoices/{id}.
// PONumber отправляется только когда номер действительно меняется.
type InvoicePayload struct {
	DueDate            *time.Time `json:"due_date,omitempty"`
	PaymentTerms       string     `json:"payment_terms,omitempty"`
	DiscountType       string     `json:"discount_type"`
	DiscountValue      float64    `json:"discount_value"`
	ShippingCost       float64    `json:"shipping_cost"`
	Subtotal           float64    `json:"subtotal"`
	DiscountAmount     float64    `json:"discount_amount"`
	TransactionFee     float64    `json:"transaction_fee"`
	ServiceFee         float64    `json:"service_fee"`
	Amount             float64    `json:"amount"`
	Balance            float64    `json:"balance"`
	Status             string     `json:"status,omitempty"`
	PONumber           *string    `json:"po_number,omitempty"`
	Notes              string     `json:"notes"`
	ShipTo             string     `json:"ship_to"`
	TermsAndConditions string     `json:"terms_and_conditions"`
}

// StaffPayload разворачивает HH:MM строки в моменты UTC: дата строки и время
// интерпретируются в опорном часовом поясе.
func (n *Normalizer) StaffPayload(line billing.StaffLine) StaffPayload {
	date := billing.DateOf(line.Date)
	return StaffPayload{
		RequestID: line.RequestID,
		Position:  string(line.Position),
		Date:      date,
		StartTime: line.Start.On(date, n.loc),
		EndTime:   line.End.On(date, n.loc),
		Rate:      line.Rate,
		Count:     line.Count,
		Amount:    line.Amount,
	}
}

func CustomLinePayloads(items []billing.CustomLine) []CustomLinePayload {
	out := make([]CustomLinePayload, 0, len(items))
	for _, it := range items {
		out = append(out, CustomLinePayload{
			UUID:        it.ID,
			RequestID:   it.RequestID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	return out
}

func RequestPayloadOf(inv billing.Invoice) RequestPayload {
	return RequestPayload{
		FirstName:     inv.FirstName,
		LastName:      inv.LastName,
		Email:         inv.Email,
		CompanyName:   inv.CompanyName,
		EventLocation: inv.EventLocation,
	}
}

// InvoicePayloadOf собирает тело обновления счета; withPO включает номер PO.
func InvoicePayloadOf(inv billing.Invoice, withPO bool) InvoicePayload {
	p := InvoicePayload{
		PaymentTerms:       string(inv.PaymentTerms),
		DiscountType:       string(inv.DiscountType.Normalize()),
		DiscountValue:      inv.DiscountValue,
		ShippingCost:       inv.ShippingCost,
		Subtotal:           inv.Subtotal,
		DiscountAmount:     inv.DiscountAmount,
		TransactionFee:     inv.TransactionFee,
		ServiceFee:         inv.ServiceFee,
		Amount:             inv.Amount,
		Balance:            inv.Balance,
		Status:             string(inv.Status),
		Notes:              inv.Notes,
		ShipTo:             inv.ShipTo,
		TermsAndConditions: inv.TermsAndConditions,
	}
	if !inv.DueDate.IsZero() {
		due := billing.DateOf(inv.DueDate)
		p.DueDate = &due
	}
	if withPO {
		po := inv.PONumber
		p.PONumber = &po
	}
	return p
}
