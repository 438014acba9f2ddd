package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     any
		wantErr string
	}{
		{"quick ok", &QuickBookRequest{Dates: []string{"2024-06-10", "2024-06-11"}}, ""},
		{"quick empty", &QuickBookRequest{}, "Dates is required"},
		{"quick bad date", &QuickBookRequest{Dates: []string{"2024-06-10", "June 11"}}, "must be a date in YYYY-MM-DD format"},
		{"single by id", &BookSpotRequest{SpotID: 3, Date: "2024-06-10"}, ""},
		{"single by code", &BookSpotRequest{SpotCode: "U1", Date: "2024-06-10"}, ""},
		{"single no spot", &BookSpotRequest{Date: "2024-06-10"}, "SpotID or SpotCode is required"},
		{"cancel missing date", &CancelBookingRequest{SpotID: 1}, "Date is required"},
		{"spot ok", &CreateSpotRequest{Code: "G1", Type: "guest", AvailableDate: "2024-06-12"}, ""},
		{"spot bad date", &CreateSpotRequest{Code: "G1", Type: "guest", AvailableDate: "tomorrow"}, "AvailableDate must be a date"},
		{"login bad email", &LoginRequest{Email: "nope", Password: "x"}, "Email must be a valid email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQuickBookRequest_WantsScarce(t *testing.T) {
	assert.False(t, QuickBookRequest{}.WantsScarce())
	assert.True(t, QuickBookRequest{PreferScarce: true}.WantsScarce())
	assert.True(t, QuickBookRequest{PrioritizeUnderground: true}.WantsScarce())
}
