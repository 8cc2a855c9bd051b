package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "profico-inventory/pkg/errors"
)

type unassignPayload struct {
	Condition string `validate:"required,equipment_condition"`
}

type createPayload struct {
	SerialNumber string `validate:"required,serial_number"`
}

func TestEquipmentConditionRule(t *testing.T) {
	v := New()

	for _, ok := range []string{"excellent", "good", "fair", "poor", "broken"} {
		assert.NoError(t, v.Validate(&unassignPayload{Condition: ok}), ok)
	}
	for _, bad := range []string{"", "terrible", "GOOD", "new"} {
		assert.Error(t, v.Validate(&unassignPayload{Condition: bad}), bad)
	}
}

func TestSerialNumberRule(t *testing.T) {
	v := New()

	for _, ok := range []string{"MBP-2024-001", "abc", "X1.2_3"} {
		assert.NoError(t, v.Validate(&createPayload{SerialNumber: ok}), ok)
	}
	for _, bad := range []string{"", "ab", "-starts-with-dash", "с-кириллицей", "has space"} {
		assert.Error(t, v.Validate(&createPayload{SerialNumber: bad}), bad)
	}
}

func TestValidationErrorsMapTo422(t *testing.T) {
	v := New()

	err := v.Validate(&unassignPayload{Condition: "terrible"})
	require.Error(t, err)

	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	assert.Contains(t, httpErr.Details, "Condition")
}
