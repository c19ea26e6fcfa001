package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kost/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "bad request from error", err: failure.BadRequest(errors.New("start_date is in the past")), wantCode: http.StatusBadRequest, wantMsg: "start_date is in the past"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid booking status"), wantCode: http.StatusBadRequest, wantMsg: "invalid booking status"},
		{name: "unauthorized", err: failure.Unauthorized("invalid signature"), wantCode: http.StatusUnauthorized, wantMsg: "invalid signature"},
		{name: "forbidden", err: failure.Forbidden("booking belongs to another tenant"), wantCode: http.StatusForbidden, wantMsg: "booking belongs to another tenant"},
		{name: "not found", err: failure.NotFound("booking not found"), wantCode: http.StatusNotFound, wantMsg: "booking not found"},
		{name: "conflict", err: failure.Conflict("room is not available"), wantCode: http.StatusConflict, wantMsg: "room is not available"},
		{name: "internal", err: failure.InternalError(errors.New("failed to update booking")), wantCode: http.StatusInternalServerError, wantMsg: "failed to update booking"},
		{name: "service unavailable", err: failure.ServiceUnavailable("database unavailable"), wantCode: http.StatusServiceUnavailable, wantMsg: "database unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure
			require.ErrorAs(t, tt.err, &fail)

			assert.Equal(t, tt.wantCode, fail.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, http.StatusForbidden, failure.ResourceRestrictedError.Code)
	assert.NotEqual(t, failure.ForbiddenError.Message, failure.ResourceRestrictedError.Message)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.Conflict("room is not available"), want: http.StatusConflict},
		{name: "wrapped failure", err: fmt.Errorf("create booking: %w", failure.NotFound("room not found")), want: http.StatusNotFound},
		{name: "twice wrapped", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", failure.ServiceUnavailable("db"))), want: http.StatusServiceUnavailable},
		{name: "plain error", err: errors.New("connection reset"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}
