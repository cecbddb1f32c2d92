package editsession

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"shiftbill/internal/domain/billing"
)

const maxPercentage = 100

var (
	defaultStart = billing.Clock{Hour: 9}
	defaultEnd   = billing.Clock{Hour: 17}
)

// Session промежуточное хранилище правок одного счета.
// Мутации меняют только рабочую копию и сразу пересчитывают итоги.
// Сессия рассчитана на одного писателя и не защищена от конкурентного доступа.
type Session struct {
	original billing.Bundle
	edited   billing.Bundle

	deletedStaff  []string
	deletedCustom []string

	today func() time.Time
}

type Option func(*Session)

// WithToday задает источник текущей даты для новых строк персонала.
func WithToday(fn func() time.Time) Option {
	return func(s *Session) {
		s.today = fn
	}
}

// New открывает сессию редактирования над снимком сервера.
func New(snapshot billing.Bundle, opts ...Option) *Session {
	s := &Session{
		today: func() time.Time { return billing.DateOf(time.Now()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(snapshot)
	return s
}

// Reset принимает свежий снимок сервера как новый оригинал.
func (s *Session) Reset(snapshot billing.Bundle) {
	s.original = snapshot.Clone()
	s.edited = snapshot.Clone()
	s.deletedStaff = nil
	s.deletedCustom = nil
}

// Cancel отбрасывает все правки.
func (s *Session) Cancel() {
	s.Reset(s.original)
}

func (s *Session) Original() billing.Bundle {
	return s.original.Clone()
}

func (s *Session) Edited() billing.Bundle {
	return s.edited.Clone()
}

// CanEditPONumber номер PO еще ни разу не менялся.
func (s *Session) CanEditPONumber() bool {
	return !s.original.Invoice.POLocked()
}

// DeletedStaffIDs идентификаторы удаленных сохраненных строк персонала.
func (s *Session) DeletedStaffIDs() []string {
	return slices.Clone(s.deletedStaff)
}

// DeletedCustomIDs идентификаторы удаленных сохраненных произвольных строк.
func (s *Session) DeletedCustomIDs() []string {
	return slices.Clone(s.deletedCustom)
}

// AddStaffLine добавляет несохраненную строку персонала и возвращает ее индекс.
func (s *Session) AddStaffLine() int {
	pos := billing.Positions()[0]
	s.edited.Staff = append(s.edited.Staff, billing.StaffLine{
		RequestID: s.original.Invoice.RequestID,
		Position:  pos,
		Date:      billing.DateOf(s.today()),
		Start:     defaultStart,
		End:       defaultEnd,
		Rate:      pos.DefaultRate(),
		Count:     1,
	})
	s.edited.Recalculate()
	return len(s.edited.Staff) - 1
}

// AddCustomLine добавляет несохраненную произвольную строку и возвращает ее индекс.
func (s *Session) AddCustomLine() int {
	s.edited.Custom = append(s.edited.Custom, billing.CustomLine{
		RequestID: s.original.Invoice.RequestID,
		Quantity:  1,
	})
	s.edited.Recalculate()
	return len(s.edited.Custom) - 1
}

// RemoveStaffLine удаляет строку персонала. Сохраненная строка попадает в список на удаление.
func (s *Session) RemoveStaffLine(i int) error {
	if i < 0 || i >= len(s.edited.Staff) {
		return fmt.Errorf("%w: staff.%d", ErrIndexOutOfRange, i)
	}
	if id := s.edited.Staff[i].ID; id != "" && !slices.Contains(s.deletedStaff, id) {
		s.deletedStaff = append(s.deletedStaff, id)
	}
	s.edited.Staff = slices.Delete(s.edited.Staff, i, i+1)
	s.edited.Recalculate()
	return nil
}

// RemoveCustomLine удаляет произвольную строку. Сохраненная строка попадает в список на удаление.
func (s *Session) RemoveCustomLine(i int) error {
	if i < 0 || i >= len(s.edited.Custom) {
		return fmt.Errorf("%w: custom.%d", ErrIndexOutOfRange, i)
	}
	if id := s.edited.Custom[i].ID; id != "" && !slices.Contains(s.deletedCustom, id) {
		s.deletedCustom = append(s.deletedCustom, id)
	}
	s.edited.Custom = slices.Delete(s.edited.Custom, i, i+1)
	s.edited.Recalculate()
	return nil
}

// SetField меняет одно поле рабочей копии. Путь имеет вид invoice.<поле>,
// staff.<индекс>.<поле> или custom.<индекс>.<поле>.
// При ошибке рабочая копия не меняется.
func (s *Session) SetField(path string, value any) error {
	parts := strings.Split(path, ".")
	var err error
	switch {
	case len(parts) == 2 && parts[0] == "invoice":
		err = s.setInvoiceField(parts[1], value)
	case len(parts) == 3 && parts[0] == "staff":
		var i int
		if i, err = rowIndex(parts[1], len(s.edited.Staff), path); err == nil {
			err = s.setStaffField(&s.edited.Staff[i], parts[2], value)
		}
	case len(parts) == 3 && parts[0] == "custom":
		var i int
		if i, err = rowIndex(parts[1], len(s.edited.Custom), path); err == nil {
			err = s.setCustomField(&s.edited.Custom[i], parts[2], value)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownField, path)
	}
	if err != nil {
		return err
	}
	s.edited.Recalculate()
	return nil
}

// Diff разбивает рабочую копию на создания, обновления и удаления.
func (s *Session) Diff() (Plan, error) {
	plan := Plan{
		RequestID:        s.original.Invoice.RequestID,
		Invoice:          s.edited.Invoice,
		DeletedStaffIDs:  slices.Clone(s.deletedStaff),
		DeletedCustomIDs: slices.Clone(s.deletedCustom),
		POChanged:        s.edited.Invoice.PONumber != s.original.Invoice.PONumber,
		POEditCounter:    s.original.Invoice.POEditCounter,
	}

	for i, line := range s.edited.Staff {
		if err := line.Position.Validate(); err != nil {
			return Plan{}, fmt.Errorf("%w: staff.%d: %w", ErrIncompletePlan, i, err)
		}
		if line.Date.IsZero() {
			return Plan{}, fmt.Errorf("%w: staff.%d: date is required", ErrIncompletePlan, i)
		}
		if line.ID == "" {
			plan.StaffToCreate = append(plan.StaffToCreate, line)
		} else {
			plan.StaffToUpdate = append(plan.StaffToUpdate, line)
		}
	}

	for i, item := range s.edited.Custom {
		if strings.TrimSpace(item.Description) == "" {
			return Plan{}, fmt.Errorf("%w: custom.%d: description is required", ErrIncompletePlan, i)
		}
		if item.ID == "" {
			plan.CustomToCreate = append(plan.CustomToCreate, item)
		} else {
			plan.CustomToUpdate = append(plan.CustomToUpdate, item)
		}
		plan.Custom = append(plan.Custom, item)
	}

	return plan, nil
}

func rowIndex(raw string, n int, path string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
	}
	return i, nil
}

func (s *Session) setInvoiceField(name string, value any) error {
	inv := s.edited.Invoice
	switch name {
	case "first_name":
		inv.FirstName = cast.ToString(value)
	case "last_name":
		inv.LastName = cast.ToString(value)
	case "email":
		inv.Email = cast.ToString(value)
	case "company_name":
		inv.CompanyName = cast.ToString(value)
	case "event_location":
		inv.EventLocation = cast.ToString(value)
	case "po_number":
		inv.PONumber = strings.TrimSpace(cast.ToString(value))
	case "notes":
		inv.Notes = cast.ToString(value)
	case "ship_to":
		inv.ShipTo = cast.ToString(value)
	case "terms_and_conditions":
		inv.TermsAndConditions = cast.ToString(value)
	case "due_date":
		d, err := toDate(value)
		if err != nil {
			return invalid("invoice."+name, value, err)
		}
		inv.DueDate = d
	case "payment_terms":
		terms := billing.PaymentTerms(cast.ToString(value))
		if err := terms.Validate(); err != nil {
			return invalid("invoice."+name, value, err)
		}
		inv.PaymentTerms = terms
	case "status":
		status := billing.Status(cast.ToString(value))
		if err := status.Validate(); err != nil {
			return invalid("invoice."+name, value, err)
		}
		inv.Status = status
	case "discount_type":
		dt := billing.DiscountType(cast.ToString(value)).Normalize()
		if err := dt.Validate(); err != nil {
			return invalid("invoice."+name, value, err)
		}
		if dt == billing.DiscountPercentage && inv.DiscountValue > maxPercentage {
			return invalid("invoice."+name, value, fmt.Errorf("discount value %v exceeds 100%%", inv.DiscountValue))
		}
		inv.DiscountType = dt
	case "discount_value":
		v, err := toAmount(value)
		if err != nil {
			return invalid("invoice."+name, value, err)
		}
		if inv.DiscountType == billing.DiscountPercentage && v > maxPercentage {
			return invalid("invoice."+name, value, errors.New("percentage above 100"))
		}
		inv.DiscountValue = v
	case "shipping_cost":
		v, err := toAmount(value)
		if err != nil {
			return invalid("invoice."+name, value, err)
		}
		inv.ShippingCost = v
	default:
		return fmt.Errorf("%w: invoice.%s", ErrUnknownField, name)
	}
	s.edited.Invoice = inv
	return nil
}

func (s *Session) setStaffField(line *billing.StaffLine, name string, value any) error {
	switch name {
	case "position":
		pos := billing.Position(cast.ToString(value))
		if err := pos.Validate(); err != nil {
			return invalid("staff."+name, value, err)
		}
		line.Position = pos
		if line.Rate == 0 {
			line.Rate = pos.DefaultRate()
		}
	case "date":
		d, err := toDate(value)
		if err != nil {
			return invalid("staff."+name, value, err)
		}
		line.Date = d
	case "start_time", "end_time":
		c, err := toClock(value)
		if err != nil {
			return invalid("staff."+name, value, err)
		}
		if name == "start_time" {
			line.Start = c
		} else {
			line.End = c
		}
	case "rate":
		v, err := toAmount(value)
		if err != nil {
			return invalid("staff."+name, value, err)
		}
		line.Rate = v
	case "count":
		n, err := toCount(value)
		if err != nil {
			return invalid("staff."+name, value, err)
		}
		line.Count = n
	default:
		return fmt.Errorf("%w: staff.%s", ErrUnknownField, name)
	}
	return nil
}

func (s *Session) setCustomField(item *billing.CustomLine, name string, value any) error {
	switch name {
	case "description":
		item.Description = cast.ToString(value)
	case "quantity":
		n, err := toCount(value)
		if err != nil {
			return invalid("custom."+name, value, err)
		}
		item.Quantity = n
	case "rate":
		v, err := toAmount(value)
		if err != nil {
			return invalid("custom."+name, value, err)
		}
		item.Rate = v
	default:
		return fmt.Errorf("%w: custom.%s", ErrUnknownField, name)
	}
	return nil
}

func invalid(path string, value any, cause error) error {
	return fmt.Errorf("%w: %s=%v: %w", ErrInvalidValue, path, value, cause)
}

// toAmount неотрицательное конечное число.
func toAmount(value any) (float64, error) {
	v, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	if v < 0 {
		return 0, errors.New("negative")
	}
	return v, nil
}

// maxCount верхняя граница количества сотрудников и единиц в строке.
const maxCount = math.MaxInt32

// toCount неотрицательное целое не больше maxCount.
func toCount(value any) (int, error) {
	v, err := toAmount(value)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, errors.New("not an integer")
	}
	if v > maxCount {
		return 0, fmt.Errorf("exceeds %d", maxCount)
	}
	return int(v), nil
}

func toDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case string:
		return billing.ParseDate(v)
	case time.Time:
		return billing.DateOf(v), nil
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		return time.Time{}, err
	}
	return billing.DateOf(t), nil
}

func toClock(value any) (billing.Clock, error) {
	if c, ok := value.(billing.Clock); ok {
		return c, nil
	}
	return billing.ParseClock(cast.ToString(value))
}
