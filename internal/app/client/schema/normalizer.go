package schema

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"shiftbill/internal/domain/billing"
)

// DefaultZone часовой пояс, в котором редактируются и отображаются смены.
const DefaultZone = "America/Los_Angeles"

// ClockFormat формат отображения времени.
type ClockFormat string

const (
	Clock12h ClockFormat = "12h"
	Clock24h ClockFormat = "24h"
)

const (
	layout12h = "3:04 PM MST"
	layout24h = "15:04 MST"
)

// Normalizer приводит записи разных источников к каноническому виду и обратно.
type Normalizer struct {
	loc    *time.Location
	format ClockFormat
}

// New создает нормализатор для часового пояса zone (пустая строка - DefaultZone).
func New(zone string, format ClockFormat) (*Normalizer, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, zone)
	}
	if format != Clock24h {
		format = Clock12h
	}
	return &Normalizer{loc: loc, format: format}, nil
}

// Location опорный часовой пояс.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Today текущая дата в опорном часовом поясе.
func (n *Normalizer) Today() time.Time {
	return billing.DateIn(time.Now(), n.loc)
}

// Staff читает строку персонала. Время начала и конца переводится в HH:MM опорного пояса.
func (n *Normalizer) Staff(r Raw) billing.StaffLine {
	line := billing.StaffLine{
		ID:        fID.text(r),
		RequestID: fRequestID.text(r),
		Position:  billing.Position(fPosition.text(r)),
		Rate:      fRate.number(r),
		Count:     fCount.integer(r),
		Amount:    fAmount.number(r),
	}

	start, hasStart := fStartTime.instant(r)
	if hasStart {
		line.Start = billing.ClockOf(start, n.loc)
	}
	if end, ok := fEndTime.instant(r); ok {
		line.End = billing.ClockOf(end, n.loc)
	}

	switch date, ok := fDate.instant(r); {
	case ok:
		line.Date = billing.DateOf(date)
	case hasStart:
		line.Date = billing.DateIn(start, n.loc)
	}
	return line
}

// StaffList читает список строк персонала.
func (n *Normalizer) StaffList(rs []Raw) []billing.StaffLine {
	out := make([]billing.StaffLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, n.Staff(r))
	}
	return out
}

// Custom читает произвольную строку счета.
func Custom(r Raw) billing.CustomLine {
	return billing.CustomLine{
		ID:          fID.text(r),
		RequestID:   fRequestID.text(r),
		Description: fDescription.text(r),
		Quantity:    fQuantity.integer(r),
		Rate:        fRate.number(r),
		Total:       fTotal.number(r),
	}
}

// CustomList читает список произвольных строк.
func CustomList(rs []Raw) []billing.CustomLine {
	out := make([]billing.CustomLine, 0, len(rs))
	for _, r := range rs {
		out = append(out, Custom(r))
	}
	return out
}

// Invoice читает счет. Поля клиента берутся из заявки request, а если ее нет -
// из вложенной в счет заявки.
func Invoice(invoice, request Raw) billing.Invoice {
	if request == nil {
		request = fRequest.object(invoice)
	}

	inv := billing.Invoice{
		ID:                 fID.text(invoice),
		RequestID:          fRequestID.text(invoice),
		PaymentTerms:       billing.PaymentTerms(fPaymentTerms.text(invoice)),
		DiscountType:       billing.DiscountType(fDiscountType.text(invoice)).Normalize(),
		DiscountValue:      fDiscountValue.number(invoice),
		ShippingCost:       fShippingCost.number(invoice),
		Subtotal:           fSubtotal.number(invoice),
		DiscountAmount:     fDiscountAmount.number(invoice),
		ServiceFee:         fServiceFee.number(invoice),
		TransactionFee:     fTransactionFee.number(invoice),
		Amount:             fAmount.number(invoice),
		Balance:            fBalance.number(invoice),
		AmountPaid:         fAmountPaid.number(invoice),
		Status:             billing.Status(fStatus.text(invoice)),
		PONumber:           fPONumber.text(invoice),
		POEditCounter:      fPOEditCounter.integer(invoice),
		Notes:              fNotes.text(invoice),
		ShipTo:             fShipTo.text(invoice),
		TermsAndConditions: fTermsAndConditions.text(invoice),
		PaymentIntent:      fPaymentIntent.text(invoice),
	}
	if due, ok := fDueDate.instant(invoice); ok {
		inv.DueDate = billing.DateOf(due)
	}

	if request != nil {
		inv.FirstName = fFirstName.text(request)
		inv.LastName = fLastName.text(request)
		inv.Email = fEmail.text(request)
		inv.CompanyName = fCompanyName.text(request)
		inv.EventLocation = fEventLocation.text(request)
		if inv.RequestID == "" {
			inv.RequestID = fID.text(request)
		}
	}
	return inv
}

// Recompute ответ пересчета итогов на сервере.
type Recompute struct {
	Totals billing.Totals
	Custom []billing.CustomLine
}

// RecomputeResult читает ответ PUT /rates/{requestId}.
func RecomputeResult(r Raw) Recompute {
	return Recompute{
		Totals: billing.Totals{
			Subtotal:       fSubtotal.number(r),
			DiscountAmount: fDiscountAmount.number(r),
			TransactionFee: fTransactionFee.number(r),
			ServiceFee:     fServiceFee.number(r),
			GrandTotal:     fAmount.number(r),
		},
		Custom: CustomList(fLineItems.list(r)),
	}
}

// DisplayTime момент t в опорном поясе в выбранном формате, например "9:00 AM PST".
func (n *Normalizer) DisplayTime(t time.Time) string {
	layout := layout12h
	if n.format == Clock24h {
		layout = layout24h
	}
	return t.In(n.loc).Format(layout)
}

// DisplayClock отображение времени суток clock в дату date.
func (n *Normalizer) DisplayClock(date time.Time, clock billing.Clock) string {
	return n.DisplayTime(clock.On(date, n.loc))
}
