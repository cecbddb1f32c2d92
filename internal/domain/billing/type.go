package billing

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// Position is a staff role. Each role has its own default hourly rate.
type Position string

const (
	PositionBrandAmbassador     Position = "Brand Ambassadors"
	PositionBartender           Position = "Bartenders"
	PositionProductionAssistant Position = "Production Assistants"
	PositionCateringStaff       Position = "Catering Staff"
	PositionModelStaff          Position = "Model Staff"
	PositionRegistrationStaff   Position = "Registration Staff"
	PositionConventionStaff     Position = "Convention Staff"
)

var defaultRates = map[Position]float64{
	PositionBrandAmbassador:     18,
	PositionBartender:           25,
	PositionProductionAssistant: 20,
	PositionCateringStaff:       18,
	PositionModelStaff:          19,
	PositionRegistrationStaff:   18,
	PositionConventionStaff:     18,
}

// Positions returns all roles in display order.
func Positions() []Position {
	return []Position{
		PositionBrandAmbassador,
		PositionBartender,
		PositionProductionAssistant,
		PositionCateringStaff,
		PositionModelStaff,
		PositionRegistrationStaff,
		PositionConventionStaff,
	}
}

// DefaultRate returns the default hourly rate, 0 for an unknown role.
func (p Position) DefaultRate() float64 {
	return defaultRates[p]
}

func (p Position) Validate() error {
	if _, ok := defaultRates[p]; ok {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPosition, string(p))
}

func (p Position) String() string {
	return string(p)
}

func (Position) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(defaultRates))
	for _, p := range Positions() {
		enum = append(enum, string(p))
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Staff position",
		Examples:    []any{string(PositionBartender)},
	}
}

// DiscountType selects how the discount is computed.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

func (t DiscountType) Validate() error {
	switch t {
	case DiscountNone, DiscountFlat, DiscountPercentage:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownDiscountType, string(t))
}

// Normalize maps the empty value to none.
func (t DiscountType) Normalize() DiscountType {
	if t == "" {
		return DiscountNone
	}
	return t
}

func (DiscountType) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(DiscountNone), string(DiscountFlat), string(DiscountPercentage)},
		Description: "Discount type",
	}
}

// Status is the payment state of an invoice.
type Status string

const (
	StatusPending       Status = "pending"
	StatusUnpaid        Status = "unpaid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusRefunded      Status = "refunded"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusUnpaid, StatusPartiallyPaid, StatusPaid, StatusRefunded:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStatus, string(s))
}

func (Status) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type: huma.TypeString,
		Enum: []any{
			string(StatusPending),
			string(StatusUnpaid),
			string(StatusPartiallyPaid),
			string(StatusPaid),
			string(StatusRefunded),
		},
		Description: "Invoice status",
	}
}

// PaymentTerms are the agreed payment terms.
type PaymentTerms string

const (
	TermsNet30        PaymentTerms = "Net 30"
	TermsNet10        PaymentTerms = "Net 10"
	TermsDueOnReceipt PaymentTerms = "Due on receipt"
)

func (t PaymentTerms) Validate() error {
	switch t {
	case TermsNet30, TermsNet10, TermsDueOnReceipt:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPaymentTerms, string(t))
}

func (PaymentTerms) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(TermsNet30), string(TermsNet10), string(TermsDueOnReceipt)},
		Description: "Payment terms",
	}
}
