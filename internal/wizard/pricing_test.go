package wizard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/brandplay-backend/internal/model"
)

func TestAddOnsTotal(t *testing.T) {
	tests := []struct {
		name   string
		addOns model.AddOns
		want   string
	}{
		{"none", model.AddOns{}, "0"},
		{"tier and boost", model.AddOns{ExtraParticipants: 50000, VisibilityBoost: true}, "79.98"},
		{"everything", model.AddOns{ExtraParticipants: 100000, VisibilityBoost: true, PushNotification: true}, "139.97"},
		{"push only", model.AddOns{PushNotification: true}, "19.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddOnsTotal(tt.addOns)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestAddOnsTotalUnknownTier(t *testing.T) {
	_, err := AddOnsTotal(model.AddOns{ExtraParticipants: 123})
	assert.Error(t, err)
}

func TestSummarizeFreeCheckout(t *testing.T) {
	s, err := Summarize(model.AddOns{})
	require.NoError(t, err)
	assert.True(t, s.Free)
	assert.Equal(t, FreeConfirmation, s.Confirmation)
	assert.Equal(t, FreeSubmitLabel, s.SubmitLabel)
	assert.NotContains(t, s.SubmitLabel, "Pagar")
}

func TestSummarizePaidCheckout(t *testing.T) {
	s, err := Summarize(model.AddOns{ExtraParticipants: 50000, VisibilityBoost: true})
	require.NoError(t, err)
	assert.False(t, s.Free)
	assert.Len(t, s.Lines, 2)
	assert.Equal(t, "Pagar $79.98", s.SubmitLabel)
}
