package wizard

import (
	"fmt"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
)

var (
	extraParticipantPrices = map[int]decimal.Decimal{
		model.ExtraParticipantsSmall:  decimal.RequireFromString("19.99"),
		model.ExtraParticipantsMedium: decimal.RequireFromString("49.99"),
		model.ExtraParticipantsLarge:  decimal.RequireFromString("89.99"),
	}
	VisibilityBoostPrice  = decimal.RequireFromString("29.99")
	PushNotificationPrice = decimal.RequireFromString("19.99")
)

type LineItem struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// PriceAddOns itemises the paid add-ons of a draft and sums them.
func PriceAddOns(a model.AddOns) ([]LineItem, decimal.Decimal, error) {
	var lines []LineItem
	if a.ExtraParticipants != model.ExtraParticipantsNone {
		price, ok := extraParticipantPrices[a.ExtraParticipants]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: no extra participant tier for %d", appErrors.ErrInvalidPatch, a.ExtraParticipants)
		}
		lines = append(lines, LineItem{
			Code:   "extra_participants",
			Label:  fmt.Sprintf("+%d participantes", a.ExtraParticipants),
			Amount: price,
		})
	}
	if a.VisibilityBoost {
		lines = append(lines, LineItem{Code: "visibility_boost", Label: "Impulso de visibilidad", Amount: VisibilityBoostPrice})
	}
	if a.PushNotification {
		lines = append(lines, LineItem{Code: "push_notification", Label: "Notificación push", Amount: PushNotificationPrice})
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return lines, total, nil
}

// AddOnsTotal is PriceAddOns without the breakdown.
func AddOnsTotal(a model.AddOns) (decimal.Decimal, error) {
	_, total, err := PriceAddOns(a)
	return total, err
}
