package wizard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/unclebandit/brandplay-backend/internal/model"
)

type PaymentState string

const (
	PaymentIdle       PaymentState = "idle"
	PaymentProcessing PaymentState = "processing"
	PaymentSuccess    PaymentState = "success"
)

const (
	FreeConfirmation = "Esta campaña no tiene costo. Envíala a revisión sin pasar por el pago."
	FreeSubmitLabel  = "Enviar campaña"
)

// CheckoutSummary is what the checkout step renders.
type CheckoutSummary struct {
	Lines        []LineItem      `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	Free         bool            `json:"free"`
	Confirmation string          `json:"confirmation"`
	SubmitLabel  string          `json:"submit_label"`
}

// Summarize prices the add-ons. A draft with no paid add-ons gets the no-cost
// copy and the free-submit label instead of a payment button.
func Summarize(a model.AddOns) (CheckoutSummary, error) {
	lines, total, err := PriceAddOns(a)
	if err != nil {
		return CheckoutSummary{}, err
	}
	if total.IsZero() {
		return CheckoutSummary{
			Lines:        []LineItem{},
			Total:        total,
			Free:         true,
			Confirmation: FreeConfirmation,
			SubmitLabel:  FreeSubmitLabel,
		}, nil
	}
	amount := total.StringFixed(2)
	return CheckoutSummary{
		Lines:        lines,
		Total:        total,
		Confirmation: fmt.Sprintf("Se procesará un pago de $%s con Stripe.", amount),
		SubmitLabel:  fmt.Sprintf("Pagar $%s", amount),
	}, nil
}
