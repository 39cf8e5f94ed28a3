package model

import "time"

type Plan string

const (
    PlanFree       Plan = "free"
    PlanPremium    Plan = "premium"
    PlanGrowth     Plan = "growth"
    PlanScale      Plan = "scale"
    PlanEnterprise Plan = "enterprise"
)

func (p Plan) Valid() bool {
    switch p {
    case PlanFree, PlanPremium, PlanGrowth, PlanScale, PlanEnterprise:
        return true
    }
    return false
}

type Subscription struct {
    Plan      Plan       `json:"plan"`
    ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// User is the session view of a profile record.
type User struct {
    ID                  string            `json:"id"`
    Email               string            `json:"email"`
    FullName            string            `json:"full_name"`
    Phone               string            `json:"phone,omitempty"`
    City                string            `json:"city,omitempty"`
    BirthDate           string            `json:"birth_date,omitempty"`
    SocialMedia         map[string]string `json:"social_media,omitempty"`
    HasAcceptedTerms    bool              `json:"has_accepted_terms"`
    HasCompletedProfile bool              `json:"has_completed_profile"`
    Subscription        Subscription      `json:"subscription"`
}

// Profile is the stored record behind a User. Columns beyond the ones the
// service reads are kept in Extra untouched.
type Profile struct {
    ID                    string            `db:"id"`
    Email                 string            `db:"email"`
    PasswordHash          string            `db:"password_hash"`
    Provider              string            `db:"provider"`
    FullName              string            `db:"full_name"`
    Phone                 string            `db:"phone"`
    City                  string            `db:"city"`
    BirthDate             string            `db:"birth_date"`
    SocialMedia           map[string]string `db:"social_media"`
    SubscriptionPlan      Plan              `db:"subscription_plan"`
    SubscriptionExpiresAt *time.Time        `db:"subscription_expires_at"`
    TermsAcceptedAt       *time.Time        `db:"terms_accepted_at"`
    ProfileCompleted      bool              `db:"profile_completed"`
    CreatedAt             time.Time         `db:"created_at"`
    UpdatedAt             *time.Time        `db:"updated_at"`
}

// User projects the profile into its session view.
func (p *Profile) User() *User {
    plan := p.SubscriptionPlan
    if plan == "" {
        plan = PlanFree
    }
    return &User{
        ID:                  p.ID,
        Email:               p.Email,
        FullName:            p.FullName,
        Phone:               p.Phone,
        City:                p.City,
        BirthDate:           p.BirthDate,
        SocialMedia:         p.SocialMedia,
        HasAcceptedTerms:    p.TermsAcceptedAt != nil,
        HasCompletedProfile: p.ProfileCompleted,
        Subscription:        Subscription{Plan: plan, ExpiresAt: p.SubscriptionExpiresAt},
    }
}
