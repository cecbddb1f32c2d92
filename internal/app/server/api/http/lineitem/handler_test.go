package lineitem

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shiftbill/internal/domain/invoice"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListLineItems(ctx context.Context, requestID uuid.UUID) ([]invoice.CustomLineItem, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]invoice.CustomLineItem), args.Error(1)
}

func (m *MockService) CreateLineItem(ctx context.Context, item *invoice.CustomLineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockService) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestHandler_Create(t *testing.T) {
	requestID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)

		svc.On("CreateLineItem", mock.Anything, mock.MatchedBy(func(it *invoice.CustomLineItem) bool {
			return it.RequestID == requestID && it.Description == "Mileage" && it.Quantity == 3
		})).Run(func(args mock.Arguments) {
			it := args.Get(1).(*invoice.CustomLineItem)
			it.ID = uuid.New()
			it.Total = 37.5
		}).Return(nil)

		input := &createInput{}
		input.Body = lineItemBody{RequestID: requestID.String(), Description: "Mileage", Quantity: 3, Rate: 12.5}

		out, err := h.create(context.Background(), input)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, out.Body.ID)
		assert.Equal(t, 37.5, out.Body.Total)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidRequestID", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)

		input := &createInput{}
		input.Body = lineItemBody{RequestID: "not-a-uuid", Description: "Mileage"}

		_, err := h.create(context.Background(), input)

		var se huma.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 422, se.GetStatus())
		svc.AssertNotCalled(t, "CreateLineItem", mock.Anything, mock.Anything)
	})

	t.Run("ServiceRejects", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)
		svc.On("CreateLineItem", mock.Anything, mock.Anything).Return(invoice.ErrInvalidData)

		input := &createInput{}
		input.Body = lineItemBody{RequestID: requestID.String(), Description: "x", Quantity: 1}

		_, err := h.create(context.Background(), input)

		var se huma.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 422, se.GetStatus())
	})
}

func TestHandler_Delete(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, nil, nil)
	id := uuid.New()
	svc.On("DeleteLineItem", mock.Anything, id).Return(invoice.ErrLineItemNotFound)

	_, err := h.delete(context.Background(), &deleteInput{ID: id.String()})

	var se huma.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.GetStatus())
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, nil, nil)
	requestID := uuid.New()
	svc.On("ListLineItems", mock.Anything, requestID).Return([]invoice.CustomLineItem{{Description: "Parking"}}, nil)

	out, err := h.list(context.Background(), &listInput{RequestID: requestID.String()})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "Parking", out.Body[0].Description)
}
