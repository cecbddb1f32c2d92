package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftbill/internal/domain/invoice"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"po locked", invoice.ErrPONumberLocked, http.StatusConflict},
		{"staff not found", invoice.ErrStaffNotFound, http.StatusNotFound},
		{"wrapped invoice not found", fmt.Errorf("load: %w", invoice.ErrInvoiceNotFound), http.StatusNotFound},
		{"invalid data", fmt.Errorf("%w: bad", invoice.ErrInvalidData), http.StatusUnprocessableEntity},
		{"nothing to pay", invoice.ErrNothingToPay, http.StatusConflict},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, From(tt.err), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}

	assert.NoError(t, From(nil))
}

func TestFrom_POLockedCarriesCode(t *testing.T) {
	var model *huma.ErrorModel
	require.ErrorAs(t, From(invoice.ErrPONumberLocked), &model)

	assert.Equal(t, "PO number has already been edited", model.Detail)
	require.Len(t, model.Errors, 1)
	assert.Equal(t, "code", model.Errors[0].Location)
	assert.Equal(t, CodePONumberLocked, model.Errors[0].Value)
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	got, err := ParseID("id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("id", "not-a-uuid")
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnprocessableEntity, se.GetStatus())
}
