// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

var (
    ErrWizardClosed       = errors.New("wizard is closed")
    ErrInvalidStep        = errors.New("step out of range")
    ErrInvalidPatch       = errors.New("invalid draft patch")
    ErrInvalidTopPositions = errors.New("top positions must be 1, 3, 5 or 10")
    ErrRewardDisabled     = errors.New("reward block is not enabled")
    ErrPaymentInProgress  = errors.New("payment already in progress")
    ErrInvalidCredentials = errors.New("invalid credentials")
    ErrEmailTaken         = errors.New("email already registered")
    ErrUnauthenticated    = errors.New("not authenticated")
    ErrInvalidPlan        = errors.New("unknown subscription plan")
    ErrNotRejected        = errors.New("only rejected campaigns can be resubmitted")
    ErrProviderNotConfigured = errors.New("sign-in provider is not configured")
)

// ErrCampaignNotFound is returned when no campaign has the requested id.
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrNotFound covers the string-keyed resources: wizards, resubmissions,
// profiles and catalog entries.
type ErrNotFound struct {
    Kind string
    ID   string
}

func (e *ErrNotFound) Error() string {
    return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewNotFound(kind, id string) error {
    return &ErrNotFound{Kind: kind, ID: id}
}

// ValidationError carries per-field messages for form submissions.
type ValidationError struct {
    Fields map[string]string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
    var c *ErrCampaignNotFound
    var n *ErrNotFound
    return errors.As(err, &c) || errors.As(err, &n)
}
