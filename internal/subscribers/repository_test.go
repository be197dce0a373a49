package subscribers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferencesValidate(t *testing.T) {
	tests := []struct {
		name    string
		prefs   Preferences
		wantErr bool
	}{
		{"daily", Preferences{EmailFrequency: FrequencyDaily}, false},
		{"weekly", Preferences{EmailFrequency: FrequencyWeekly}, false},
		{"per filing", Preferences{EmailFrequency: FrequencyPerEvent}, false},
		{"empty", Preferences{}, true},
		{"unknown", Preferences{EmailFrequency: "monthly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.prefs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
