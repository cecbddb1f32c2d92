package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shiftbill/internal/app/client/editsession"
	"shiftbill/internal/app/client/schema"
	"shiftbill/internal/domain/billing"
)

// MockBackend is a mock implementation of the Backend interface for testing
type MockBackend struct {
	mock.Mock

	mu    sync.Mutex
	calls []string
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *MockBackend) order() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockBackend) LoadBundle(ctx context.Context, requestID string) (billing.Bundle, error) {
	m.record("load")
	args := m.Called(ctx, requestID)
	return args.Get(0).(billing.Bundle), args.Error(1)
}

func (m *MockBackend) GetInvoice(ctx context.Context, requestID string) (billing.Invoice, error) {
	m.record("get_invoice")
	args := m.Called(ctx, requestID)
	return args.Get(0).(billing.Invoice), args.Error(1)
}

func (m *MockBackend) DeleteStaffLine(ctx context.Context, id string) error {
	m.record("delete_staff:" + id)
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) DeleteCustomLine(ctx context.Context, id string) error {
	m.record("delete_custom:" + id)
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) CreateStaffLine(ctx context.Context, line billing.StaffLine) (string, error) {
	m.record("create_staff")
	args := m.Called(ctx, line)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) UpdateStaffLine(ctx context.Context, line billing.StaffLine) error {
	m.record("update_staff:" + line.ID)
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockBackend) UpdateRequest(ctx context.Context, inv billing.Invoice) error {
	m.record("update_request")
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockBackend) UpdateInvoice(ctx context.Context, inv billing.Invoice, withPO bool) error {
	m.record("update_invoice")
	args := m.Called(ctx, inv, withPO)
	return args.Error(0)
}

func (m *MockBackend) Recompute(ctx context.Context, requestID string, custom []billing.CustomLine) (schema.Recompute, error) {
	m.record("recompute")
	args := m.Called(ctx, requestID, custom)
	return args.Get(0).(schema.Recompute), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isNew(l billing.StaffLine) bool { return l.ID == "" }

func testPlan() editsession.Plan {
	return editsession.Plan{
		RequestID: "req-1",
		Invoice: billing.Invoice{
			ID:         "inv-1",
			RequestID:  "req-1",
			PONumber:   "PO-1",
			AmountPaid: 100,
		},
		StaffToCreate:    []billing.StaffLine{{Position: billing.PositionBartender, Rate: 25, Count: 1}},
		StaffToUpdate:    []billing.StaffLine{{ID: "staff-1", Position: billing.PositionModelStaff, Rate: 19, Count: 2}},
		Custom:           []billing.CustomLine{{ID: "custom-1", Description: "Ice", Quantity: 2, Rate: 5}},
		DeletedStaffIDs:  []string{"staff-old-1", "staff-old-2"},
		DeletedCustomIDs: []string{"custom-old"},
	}
}

func recomputed() schema.Recompute {
	return schema.Recompute{Totals: billing.Totals{
		Subtotal:       1000,
		TransactionFee: 35,
		ServiceFee:     517.5,
		GrandTotal:     1552.5,
	}}
}

func TestOrchestrator_Run_Success(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackend)
	plan := testPlan()
	fresh := billing.Bundle{Invoice: billing.Invoice{ID: "inv-1", Amount: 1552.5}}

	backend.On("DeleteStaffLine", mock.Anything, mock.Anything).Return(nil).Twice()
	backend.On("DeleteCustomLine", mock.Anything, "custom-old").Return(nil).Once()
	backend.On("CreateStaffLine", mock.Anything, mock.MatchedBy(isNew)).Return("staff-new", nil).Once()
	backend.On("UpdateStaffLine", mock.Anything, plan.StaffToUpdate[0]).Return(nil).Once()
	backend.On("UpdateRequest", mock.Anything, plan.Invoice).Return(nil).Once()
	backend.On("UpdateInvoice", mock.Anything, plan.Invoice, false).Return(nil).Once()
	backend.On("Recompute", mock.Anything, "req-1", plan.Custom).Return(recomputed(), nil).Once()
	backend.On("UpdateInvoice", mock.Anything, mock.MatchedBy(func(inv billing.Invoice) bool {
		return inv.Amount == 1552.5
	}), false).Return(nil).Once()
	backend.On("LoadBundle", mock.Anything, "req-1").Return(fresh, nil).Once()

	o := NewOrchestrator(backend, discardLogger())
	res, err := o.Run(ctx, plan)

	require.NoError(t, err)
	assert.Equal(t, StageDone, o.Stage())
	assert.Equal(t, fresh, res.Bundle)
	assert.Equal(t, []string{"staff-new"}, res.CreatedStaffIDs)
	assert.Equal(t, 1552.5, res.Totals.GrandTotal)
	backend.AssertExpectations(t)

	// финальное обновление счета сохраняет частичную оплату
	var final billing.Invoice
	for _, c := range backend.Calls {
		if c.Method == "UpdateInvoice" {
			final = c.Arguments.Get(1).(billing.Invoice)
		}
	}
	assert.Equal(t, 1552.5, final.Amount)
	assert.Equal(t, 1452.5, final.Balance)
	assert.Equal(t, 517.5, final.ServiceFee)
	assert.Equal(t, 35.0, final.TransactionFee)
	assert.Equal(t, 1000.0, final.Subtotal)
}

func TestOrchestrator_Run_Ordering(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()

	backend.On("DeleteStaffLine", mock.Anything, mock.Anything).Return(nil)
	backend.On("DeleteCustomLine", mock.Anything, mock.Anything).Return(nil)
	backend.On("CreateStaffLine", mock.Anything, mock.Anything).Return("staff-new", nil)
	backend.On("UpdateStaffLine", mock.Anything, mock.Anything).Return(nil)
	backend.On("UpdateRequest", mock.Anything, mock.Anything).Return(nil)
	backend.On("UpdateInvoice", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	backend.On("Recompute", mock.Anything, mock.Anything, mock.Anything).Return(recomputed(), nil)
	backend.On("LoadBundle", mock.Anything, mock.Anything).Return(billing.Bundle{}, nil)

	_, err := NewOrchestrator(backend, discardLogger()).Run(context.Background(), plan)
	require.NoError(t, err)

	calls := backend.order()
	require.Len(t, calls, 10)

	phase := func(call string) int {
		switch {
		case strings.HasPrefix(call, "delete_staff"):
			return 0
		case strings.HasPrefix(call, "delete_custom"):
			return 1
		case call == "create_staff" || strings.HasPrefix(call, "update_staff"):
			return 2
		}
		return 3
	}
	for i := 1; i < 5; i++ {
		assert.LessOrEqual(t, phase(calls[i-1]), phase(calls[i]), "calls out of order: %v", calls)
	}
	assert.Equal(t, []string{"update_request", "update_invoice", "recompute", "update_invoice", "load"}, calls[5:])
}

func TestOrchestrator_Run_POLockedShortCircuit(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.POChanged = true
	plan.POEditCounter = 1

	o := NewOrchestrator(backend, discardLogger())
	_, err := o.Run(context.Background(), plan)

	require.ErrorIs(t, err, ErrPONumberLocked)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StageIdle, stepErr.Stage)
	assert.Equal(t, StageFailed, o.Stage())
	assert.Empty(t, backend.order())
}

func TestOrchestrator_Run_POLockedOnServer(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.DeletedStaffIDs = nil
	plan.DeletedCustomIDs = nil
	plan.StaffToCreate = nil
	plan.StaffToUpdate = nil
	plan.POChanged = true

	backend.On("UpdateRequest", mock.Anything, mock.Anything).Return(nil)
	backend.On("GetInvoice", mock.Anything, "req-1").Return(billing.Invoice{ID: "inv-1", POEditCounter: 1}, nil)

	_, err := NewOrchestrator(backend, discardLogger()).Run(context.Background(), plan)

	require.ErrorIs(t, err, ErrPONumberLocked)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StageUpdatingInvoiceProvisional, stepErr.Stage)
	backend.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_Run_POSentWhenAllowed(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.DeletedStaffIDs = nil
	plan.DeletedCustomIDs = nil
	plan.StaffToCreate = nil
	plan.StaffToUpdate = nil
	plan.POChanged = true

	backend.On("UpdateRequest", mock.Anything, mock.Anything).Return(nil)
	backend.On("GetInvoice", mock.Anything, "req-1").Return(billing.Invoice{ID: "inv-1"}, nil)
	backend.On("UpdateInvoice", mock.Anything, plan.Invoice, true).Return(nil).Once()
	backend.On("Recompute", mock.Anything, mock.Anything, mock.Anything).Return(recomputed(), nil)
	backend.On("UpdateInvoice", mock.Anything, mock.Anything, false).Return(nil).Once()
	backend.On("LoadBundle", mock.Anything, mock.Anything).Return(billing.Bundle{}, nil)

	_, err := NewOrchestrator(backend, discardLogger()).Run(context.Background(), plan)
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestOrchestrator_Run_ServerRejectsPO(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.DeletedStaffIDs = nil
	plan.DeletedCustomIDs = nil
	plan.StaffToCreate = nil
	plan.StaffToUpdate = nil
	plan.POChanged = true

	backend.On("UpdateRequest", mock.Anything, mock.Anything).Return(nil)
	backend.On("GetInvoice", mock.Anything, "req-1").Return(billing.Invoice{ID: "inv-1"}, nil)
	backend.On("UpdateInvoice", mock.Anything, mock.Anything, true).
		Return(&APIError{Status: 409, Message: "PO number has already been edited"})

	_, err := NewOrchestrator(backend, discardLogger()).Run(context.Background(), plan)

	require.ErrorIs(t, err, ErrPONumberLocked)
	backend.AssertNotCalled(t, "Recompute", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_Run_DeleteFailureAborts(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	boom := errors.New("connection reset")

	backend.On("DeleteStaffLine", mock.Anything, "staff-old-1").Return(nil)
	backend.On("DeleteStaffLine", mock.Anything, "staff-old-2").Return(boom)

	o := NewOrchestrator(backend, discardLogger())
	_, err := o.Run(context.Background(), plan)

	require.ErrorIs(t, err, boom)
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StageDeleting, stepErr.Stage)
	assert.Equal(t, StageFailed, o.Stage())
	backend.AssertNotCalled(t, "DeleteCustomLine", mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "CreateStaffLine", mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrchestrator_Run_UpsertFailureReportsCreated(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.DeletedStaffIDs = nil
	plan.DeletedCustomIDs = nil
	plan.StaffToCreate = append(plan.StaffToCreate, billing.StaffLine{Position: billing.PositionCateringStaff})

	backend.On("CreateStaffLine", mock.Anything, mock.MatchedBy(func(l billing.StaffLine) bool {
		return l.Position == billing.PositionBartender
	})).Return("staff-new", nil)
	backend.On("CreateStaffLine", mock.Anything, mock.MatchedBy(func(l billing.StaffLine) bool {
		return l.Position == billing.PositionCateringStaff
	})).Return("", &APIError{Status: 422, Message: "invalid position"})
	backend.On("UpdateStaffLine", mock.Anything, mock.Anything).Return(nil)

	res, err := NewOrchestrator(backend, discardLogger()).Run(context.Background(), plan)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StageUpserting, stepErr.Stage)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, []string{"staff-new"}, res.CreatedStaffIDs)
	backend.AssertNotCalled(t, "UpdateRequest", mock.Anything, mock.Anything)
}

func TestOrchestrator_Run_SaveInProgress(t *testing.T) {
	o := NewOrchestrator(new(MockBackend), discardLogger())
	o.isSaving = true

	_, err := o.Run(context.Background(), testPlan())
	require.ErrorIs(t, err, ErrSaveInProgress)
}

func TestOrchestrator_Run_LogsPlanBreakdown(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.CustomToCreate = []billing.CustomLine{{Description: "Tables", Quantity: 1}}
	plan.CustomToUpdate = plan.Custom
	boom := errors.New("connection reset")
	backend.On("DeleteStaffLine", mock.Anything, mock.Anything).Return(boom)
	backend.On("DeleteCustomLine", mock.Anything, mock.Anything).Return(nil)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	_, err := NewOrchestrator(backend, log).Run(context.Background(), plan)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), `"custom_create":1`)
	assert.Contains(t, buf.String(), `"custom_update":1`)
	assert.NotContains(t, buf.String(), "Строки не менялись")
}

func TestOrchestrator_Run_EmptyPlanLogged(t *testing.T) {
	backend := new(MockBackend)
	plan := testPlan()
	plan.StaffToCreate = nil
	plan.StaffToUpdate = nil
	plan.Custom = nil
	plan.DeletedStaffIDs = nil
	plan.DeletedCustomIDs = nil
	boom := errors.New("request rejected")
	backend.On("UpdateRequest", mock.Anything, plan.Invoice).Return(boom)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	_, err := NewOrchestrator(backend, log).Run(context.Background(), plan)

	require.ErrorIs(t, err, boom)
	assert.True(t, plan.Empty())
	assert.Contains(t, buf.String(), "Строки не менялись")
}
