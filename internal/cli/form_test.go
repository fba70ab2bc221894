package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var formNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

func TestValidatePace(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"5:00/km", true},
		{"8:30/mi", true},
		{"4:45", true},
		{"fast", false},
		{"", false},
		{"5:75/km", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validatePace(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateRaceDate(t *testing.T) {
	validate := validateRaceDate(formNow)

	assert.NoError(t, validate("2024-06-01"))
	assert.NoError(t, validate(" 2024-03-17 "))

	assert.Error(t, validate("2024-03-10"), "less than a week out")
	assert.Error(t, validate("2024-01-01"), "in the past")
	assert.Error(t, validate("soon"))
	assert.Error(t, validate("01/06/2024"))
}

func TestValidateCustomMeters(t *testing.T) {
	assert.NoError(t, validateCustomMeters("25000"))
	assert.NoError(t, validateCustomMeters(" 1000 "))

	assert.Error(t, validateCustomMeters("999"))
	assert.Error(t, validateCustomMeters("500001"))
	assert.Error(t, validateCustomMeters("26.2"))
	assert.Error(t, validateCustomMeters(""))
}
