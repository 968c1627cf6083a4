package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WrapsCause(t *testing.T) {
	cause := errors.New("row missing")
	err := NewNotFoundError("trip not found", cause)

	assert.Equal(t, http.StatusNotFound, err.Code)
	assert.Equal(t, "trip not found: row missing", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithField(t *testing.T) {
	err := NewBadRequestError("month must be YYYY-MM", nil).WithField("month")
	assert.Equal(t, "month", err.Field)
	assert.Equal(t, "month must be YYYY-MM", err.Error())
}

func TestNewUpstreamError(t *testing.T) {
	err := NewUpstreamError("fr24", 403, "forbidden")
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Contains(t, err.Message, "fr24")
	assert.Contains(t, err.Message, "403")
}
