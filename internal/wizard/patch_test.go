package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestApplyPatchKeepsOtherFields(t *testing.T) {
	d := model.CampaignDraft{Title: "Verano", Author: "Acme", Terms: "t&c"}

	out, err := ApplyPatch(d, Patch{"description": raw(t, "Juega y gana")})
	require.NoError(t, err)

	assert.Equal(t, "Juega y gana", out.Description)
	assert.Equal(t, "Verano", out.Title)
	assert.Equal(t, "Acme", out.Author)
	assert.Equal(t, "t&c", out.Terms)
	assert.Empty(t, d.Description, "input draft is not modified")
}

func TestApplyPatchReplacesWholeField(t *testing.T) {
	d := model.CampaignDraft{AddOns: model.AddOns{ExtraParticipants: 10000, VisibilityBoost: true}}

	out, err := ApplyPatch(d, Patch{"add_ons": raw(t, map[string]any{"push_notification": true})})
	require.NoError(t, err)

	assert.Equal(t, model.AddOns{PushNotification: true}, out.AddOns)
}

func TestApplyPatchNullClearsRewardBlock(t *testing.T) {
	d := model.CampaignDraft{BonusLevel: DefaultBonusLevel()}

	out, err := ApplyPatch(d, Patch{"bonus_level": json.RawMessage("null")})
	require.NoError(t, err)
	assert.Nil(t, out.BonusLevel)
}

func TestApplyPatchRejectsUnknownFields(t *testing.T) {
	_, err := ApplyPatch(model.CampaignDraft{}, Patch{"budget": raw(t, 10)})
	assert.ErrorIs(t, err, appErrors.ErrInvalidPatch)

	_, err = ApplyPatch(model.CampaignDraft{}, Patch{"title": raw(t, 10)})
	assert.ErrorIs(t, err, appErrors.ErrInvalidPatch)
}
