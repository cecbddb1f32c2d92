package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func staffLine(rate float64, start, end string, count int) StaffLine {
	return StaffLine{
		Position: PositionBartender,
		Start:    MustClock(start),
		End:      MustClock(end),
		Rate:     rate,
		Count:    count,
	}
}

func TestStaffLineAmount(t *testing.T) {
	tests := []struct {
		name string
		line StaffLine
		want float64
	}{
		{name: "eight hours five people", line: staffLine(25, "09:00", "17:00", 5), want: 1000},
		{name: "hours rounded before multiplying", line: staffLine(25, "09:00", "09:20", 3), want: 24.75},
		{name: "zero duration", line: staffLine(40, "12:00", "12:00", 10), want: 0},
		{name: "zero headcount", line: staffLine(18, "09:00", "17:00", 0), want: 0},
		{name: "fractional rate", line: staffLine(18.5, "09:00", "13:30", 2), want: 166.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StaffLineAmount(tt.line))
		})
	}
}

func TestCustomLineTotal(t *testing.T) {
	assert.Equal(t, 59.97, CustomLineTotal(CustomLine{Quantity: 3, Rate: 19.99}))
	assert.Equal(t, 0.0, CustomLineTotal(CustomLine{Quantity: 0, Rate: 100}))
}

func TestAggregate(t *testing.T) {
	thousand := []StaffLine{staffLine(25, "09:00", "17:00", 5)}

	tests := []struct {
		name          string
		staff         []StaffLine
		custom        []CustomLine
		discountType  DiscountType
		discountValue float64
		shipping      float64
		want          Totals
	}{
		{
			name:         "no discount",
			staff:        thousand,
			discountType: DiscountNone,
			want: Totals{
				Subtotal:         1000,
				AdjustedSubtotal: 1000,
				TransactionFee:   35,
				ServiceFee:       517.5,
				GrandTotal:       1552.5,
			},
		},
		{
			name:          "percentage discount",
			staff:         thousand,
			discountType:  DiscountPercentage,
			discountValue: 10,
			want: Totals{
				Subtotal:         1000,
				DiscountAmount:   100,
				AdjustedSubtotal: 900,
				TransactionFee:   31.5,
				ServiceFee:       465.75,
				GrandTotal:       1397.25,
			},
		},
		{
			name:          "flat discount with shipping",
			staff:         thousand,
			discountType:  DiscountFlat,
			discountValue: 50,
			shipping:      20,
			want: Totals{
				Subtotal:         1000,
				DiscountAmount:   50,
				AdjustedSubtotal: 970,
				TransactionFee:   33.95,
				ServiceFee:       501.98,
				GrandTotal:       1505.93,
			},
		},
		{
			name:   "staff and custom lines",
			staff:  []StaffLine{staffLine(20, "10:00", "14:00", 2)},
			custom: []CustomLine{{Quantity: 2, Rate: 50}},
			want: Totals{
				Subtotal:         260,
				AdjustedSubtotal: 260,
				TransactionFee:   9.1,
				ServiceFee:       134.55,
				GrandTotal:       403.65,
			},
		},
		{
			name:          "discount value ignored without discount type",
			staff:         thousand,
			discountValue: 10,
			want: Totals{
				Subtotal:         1000,
				AdjustedSubtotal: 1000,
				TransactionFee:   35,
				ServiceFee:       517.5,
				GrandTotal:       1552.5,
			},
		},
		{
			name: "empty invoice",
			want: Totals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.staff, tt.custom, tt.discountType, tt.discountValue, tt.shipping)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	staff := []StaffLine{
		staffLine(25, "09:00", "09:20", 3),
		staffLine(19, "08:15", "16:50", 4),
	}
	custom := []CustomLine{{Quantity: 7, Rate: 12.345}}

	first := Aggregate(staff, custom, DiscountPercentage, 7.5, 12.5)
	second := Aggregate(staff, custom, DiscountPercentage, 7.5, 12.5)
	assert.Equal(t, first, second)
}

func TestAggregateSubtotal(t *testing.T) {
	got := AggregateSubtotal(1000, DiscountPercentage, 10, 0)
	assert.Equal(t, 1397.25, got.GrandTotal)
}

func TestTotals_Balance(t *testing.T) {
	totals := Totals{GrandTotal: 1552.5}
	assert.Equal(t, 1552.5, totals.Balance(0))
	assert.Equal(t, 1052.5, totals.Balance(500))
}

func TestBundle_Recalculate(t *testing.T) {
	b := Bundle{
		Invoice: Invoice{DiscountType: DiscountNone, AmountPaid: 52.5},
		Staff:   []StaffLine{staffLine(25, "09:00", "17:00", 5)},
		Custom:  []CustomLine{{Quantity: 1, Rate: 0}},
	}

	totals := b.Recalculate()

	assert.Equal(t, 1000.0, b.Staff[0].Amount)
	assert.Equal(t, 0.0, b.Custom[0].Total)
	assert.Equal(t, 1552.5, totals.GrandTotal)
	assert.Equal(t, 1552.5, b.Invoice.Amount)
	assert.Equal(t, 1500.0, b.Invoice.Balance)
}

func TestBundle_CloneDoesNotShareRows(t *testing.T) {
	b := Bundle{Staff: []StaffLine{staffLine(25, "09:00", "17:00", 1)}}
	c := b.Clone()
	c.Staff[0].Rate = 99
	assert.Equal(t, 25.0, b.Staff[0].Rate)
}

func TestPosition_DefaultRate(t *testing.T) {
	assert.Equal(t, 25.0, PositionBartender.DefaultRate())
	assert.Equal(t, 19.0, PositionModelStaff.DefaultRate())
	assert.Equal(t, 0.0, Position("Astronauts").DefaultRate())
	assert.ErrorIs(t, Position("Astronauts").Validate(), ErrUnknownPosition)
	assert.Len(t, Positions(), 7)
}
