package model

import "time"

type CampaignStatus string

const (
    StatusPending   CampaignStatus = "pending"
    StatusActive    CampaignStatus = "active"
    StatusRejected  CampaignStatus = "rejected"
    StatusCompleted CampaignStatus = "completed"
)

// Valid reports whether s is one of the known campaign states.
func (s CampaignStatus) Valid() bool {
    switch s {
    case StatusPending, StatusActive, StatusRejected, StatusCompleted:
        return true
    }
    return false
}

// Campaign is the read-only summary used for list rendering. Draft holds the
// submitted wizard payload and is nil for fixture campaigns.
type Campaign struct {
    ID              int            `db:"id" json:"id"`
    OwnerID         string         `db:"owner_id" json:"owner_id,omitempty"`
    Title           string         `db:"title" json:"title"`
    Author          string         `db:"author" json:"author"`
    Status          CampaignStatus `db:"status" json:"status"`
    StartDate       string         `db:"start_date" json:"start_date"`
    EndDate         string         `db:"end_date" json:"end_date"`
    Participants    int            `db:"participants" json:"participants"`
    RejectionReason string         `db:"rejection_reason" json:"rejection_reason,omitempty"`
    RejectionDetail string         `db:"rejection_detail" json:"rejection_detail,omitempty"`
    Draft           *CampaignDraft `db:"draft" json:"draft,omitempty"`
    CreatedAt       time.Time      `db:"created_at" json:"created_at"`
    UpdatedAt       *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}
