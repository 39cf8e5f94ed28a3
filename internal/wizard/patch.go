package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

// Patch is a partial draft keyed by the draft's JSON field names.
type Patch map[string]json.RawMessage

// ApplyPatch shallow-merges p into d: every key present replaces the whole
// field, null included, and absent keys are left alone. Unknown keys are
// rejected. d itself is never modified.
func ApplyPatch(d model.CampaignDraft, p Patch) (model.CampaignDraft, error) {
	if len(p) == 0 {
		return d.Clone(), nil
	}

	base, err := json.Marshal(d)
	if err != nil {
		return d, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return d, err
	}

	for key, value := range p {
		if _, ok := fields[key]; !ok {
			return d, fmt.Errorf("%w: unknown field %q", appErrors.ErrInvalidPatch, key)
		}
		fields[key] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return d, fmt.Errorf("%w: %v", appErrors.ErrInvalidPatch, err)
	}

	var out model.CampaignDraft
	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return d, fmt.Errorf("%w: %v", appErrors.ErrInvalidPatch, err)
	}
	return out, nil
}
