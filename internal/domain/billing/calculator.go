package billing

import "github.com/shopspring/decimal"

var (
	transactionFeeRate = decimal.RequireFromString("0.035")
	serviceFeeRate     = decimal.RequireFromString("0.5")
	hundred            = decimal.NewFromInt(100)
)

// Totals holds the computed invoice amounts.
type Totals struct {
	Subtotal         float64 `json:"subtotal"`
	DiscountAmount   float64 `json:"discount_amount"`
	AdjustedSubtotal float64 `json:"adjusted_subtotal"`
	TransactionFee   float64 `json:"transaction_fee"`
	ServiceFee       float64 `json:"service_fee"`
	GrandTotal       float64 `json:"amount"`
}

// Balance is the amount still due after payments already received.
func (t Totals) Balance(amountPaid float64) float64 {
	return dec(t.GrandTotal).Sub(dec(amountPaid)).Round(2).InexactFloat64()
}

// StaffLineAmount is rate × hours × count for a staff line.
func StaffLineAmount(line StaffLine) float64 {
	return staffAmount(line).InexactFloat64()
}

// CustomLineTotal is quantity × rate for a custom line.
func CustomLineTotal(item CustomLine) float64 {
	return customTotal(item).InexactFloat64()
}

func staffAmount(line StaffLine) decimal.Decimal {
	hours := dec(HoursBetween(line.Start, line.End))
	return dec(line.Rate).Mul(hours).Mul(decimal.NewFromInt(int64(line.Count))).Round(2)
}

func customTotal(item CustomLine) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity)).Mul(dec(item.Rate)).Round(2)
}

// Aggregate computes invoice totals. Every intermediate amount is rounded to
// cents, so the result may differ by a cent from an unrounded computation.
func Aggregate(staff []StaffLine, custom []CustomLine, discountType DiscountType, discountValue, shippingCost float64) Totals {
	subtotal := decimal.Zero
	for _, line := range staff {
		subtotal = subtotal.Add(staffAmount(line))
	}
	for _, item := range custom {
		subtotal = subtotal.Add(customTotal(item))
	}
	return totalsFrom(subtotal.Round(2), discountType, discountValue, shippingCost)
}

// AggregateSubtotal computes totals from a known subtotal.
func AggregateSubtotal(subtotal float64, discountType DiscountType, discountValue, shippingCost float64) Totals {
	return totalsFrom(dec(subtotal).Round(2), discountType, discountValue, shippingCost)
}

func totalsFrom(subtotal decimal.Decimal, discountType DiscountType, discountValue, shippingCost float64) Totals {
	var discount decimal.Decimal
	switch discountType {
	case DiscountFlat:
		discount = dec(discountValue).Round(2)
	case DiscountPercentage:
		discount = subtotal.Mul(dec(discountValue)).Div(hundred).Round(2)
	default:
		discount = decimal.Zero
	}

	adjusted := subtotal.Sub(discount).Add(dec(shippingCost))
	transactionFee := adjusted.Mul(transactionFeeRate).Round(2)
	serviceFee := adjusted.Add(transactionFee).Mul(serviceFeeRate).Round(2)
	grand := adjusted.Add(serviceFee).Add(transactionFee).Round(2)

	return Totals{
		Subtotal:         subtotal.InexactFloat64(),
		DiscountAmount:   discount.InexactFloat64(),
		AdjustedSubtotal: adjusted.Round(2).InexactFloat64(),
		TransactionFee:   transactionFee.InexactFloat64(),
		ServiceFee:       serviceFee.InexactFloat64(),
		GrandTotal:       grand.InexactFloat64(),
	}
}
