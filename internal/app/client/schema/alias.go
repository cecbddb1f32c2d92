package schema

import (
	"time"

	"github.com/spf13/cast"
)

// Raw запись в том виде, в каком ее вернул сервер.
type Raw = map[string]any

// field список имен одного поля у разных источников.
// Побеждает первое присутствующее и не-null значение, нулевые значения не пропускаются.
type field []string

var (
	fID        = field{"uuid", "id", "UUID", "ID"}
	fRequestID = field{"request_id", "requestId", "RequestID"}
	fRequest   = field{"request", "Request"}

	// строки персонала
	fPosition  = field{"position", "Position"}
	fDate      = field{"date", "Date"}
	fStartTime = field{"start_time", "startTime", "StartTime"}
	fEndTime   = field{"end_time", "endTime", "EndTime"}
	fRate      = field{"rate", "Rate"}
	fCount     = field{"count", "Count"}
	fAmount    = field{"amount", "Amount"}

	// произвольные строки
	fDescription = field{"description", "Description"}
	fQuantity    = field{"quantity", "Quantity"}
	fTotal       = field{"total", "Total"}

	// заявка
	fFirstName     = field{"first_name", "firstName", "FirstName"}
	fLastName      = field{"last_name", "lastName", "LastName"}
	fEmail         = field{"email", "Email"}
	fCompanyName   = field{"company_name", "companyName", "CompanyName"}
	fEventLocation = field{"event_location", "eventLocation", "EventLocation"}

	// счет
	fDueDate            = field{"due_date", "dueDate", "DueDate"}
	fPaymentTerms       = field{"payment_terms", "paymentTerms", "PaymentTerms"}
	fDiscountType       = field{"discount_type", "discountType", "DiscountType"}
	fDiscountValue      = field{"discount_value", "discountValue", "DiscountValue"}
	fShippingCost       = field{"shipping_cost", "shippingCost", "ShippingCost"}
	fSubtotal           = field{"subtotal", "Subtotal"}
	fDiscountAmount     = field{"discount_amount", "discountAmount", "DiscountAmount"}
	fServiceFee         = field{"service_fee", "serviceFee", "ServiceFee"}
	fTransactionFee     = field{"transaction_fee", "transactionFee", "TransactionFee"}
	fBalance            = field{"balance", "Balance"}
	fAmountPaid         = field{"amount_paid", "amountPaid", "AmountPaid"}
	fStatus             = field{"status", "Status"}
	fPONumber           = field{"po_number", "poNumber", "PONumber"}
	fPOEditCounter      = field{"po_edit_counter", "poEditCounter", "POEditCounter"}
	fNotes              = field{"notes", "Notes"}
	fShipTo             = field{"ship_to", "shipTo", "ShipTo"}
	fTermsAndConditions = field{"terms_and_conditions", "termsAndConditions", "TermsAndConditions"}
	fPaymentIntent      = field{"payment_intent", "payment_intent_id", "paymentIntent", "PaymentIntent"}

	// ответ пересчета
	fLineItems = field{"line_items", "lineItems", "LineItems"}
)

func (f field) pick(r Raw) (any, bool) {
	for _, k := range f {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (f field) text(r Raw) string {
	v, _ := f.pick(r)
	return cast.ToString(v)
}

func (f field) number(r Raw) float64 {
	v, _ := f.pick(r)
	return cast.ToFloat64(v)
}

func (f field) integer(r Raw) int {
	v, ok := f.pick(r)
	if !ok {
		return 0
	}
	if n, err := cast.ToIntE(v); err == nil {
		return n
	}
	// po_edit_counter у одного из источников хранится как число с плавающей точкой
	return int(cast.ToFloat64(v))
}

func (f field) instant(r Raw) (time.Time, bool) {
	v, ok := f.pick(r)
	if !ok {
		return time.Time{}, false
	}
	t, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

func (f field) object(r Raw) Raw {
	v, _ := f.pick(r)
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return nil
	}
	return m
}

func (f field) list(r Raw) []Raw {
	v, ok := f.pick(r)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(items))
	for _, it := range items {
		if m, err := cast.ToStringMapE(it); err == nil {
			out = append(out, m)
		}
	}
	return out
}
