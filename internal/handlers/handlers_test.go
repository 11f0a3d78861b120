package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedKind string
	}{
		{
			name:         "forbidden",
			err:          services.ErrForbidden,
			expectedCode: http.StatusForbidden,
			expectedKind: "FORBIDDEN",
		},
		{
			name:         "no active organization",
			err:          services.ErrNoOrganization,
			expectedCode: http.StatusForbidden,
			expectedKind: "FORBIDDEN",
		},
		{
			name:         "field-scoped rule violation",
			err:          common.Invalidf("lines", "line 1: quantity must be positive"),
			expectedCode: http.StatusBadRequest,
			expectedKind: "VALIDATION_ERROR",
		},
		{
			name:         "request-wide rule violation",
			err:          common.Invalidf("", "cgst_rate + sgst_rate must equal rate"),
			expectedCode: http.StatusBadRequest,
			expectedKind: "CLIENT_ERROR",
		},
		{
			name:         "unexpected failure",
			err:          errors.New("pq: connection refused"),
			expectedCode: http.StatusInternalServerError,
			expectedKind: "SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			require.NoError(t, serviceError(c, tt.err))

			assert.Equal(t, tt.expectedCode, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.Equal(t, tt.expectedKind, resp.Error.Code)
		})
	}
}

func TestServiceErrorValidationDetails(t *testing.T) {
	c, rec := newTestContext(t)

	err := serviceError(c, common.Invalidf("quantity", "adjustment quantity cannot be zero"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "adjustment quantity cannot be zero", resp.Error.Details["quantity"])
}

func TestServiceErrorDoesNotLeakInternals(t *testing.T) {
	c, rec := newTestContext(t)

	err := serviceError(c, errors.New(`ERROR: relation "invoices" does not exist (SQLSTATE 42P01)`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
}

func TestParseUUIDParamRejectsMalformed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_, err := parseUUIDParam(c, "id")
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}
