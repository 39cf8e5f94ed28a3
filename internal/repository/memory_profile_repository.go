package repository

import (
    "context"
    "fmt"
    "strings"
    "sync"
    "time"

    appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
    "github.com/unclebandit/brandplay-backend/internal/model"
)

type MemoryProfileRepository struct {
    mu       sync.RWMutex
    profiles map[string]*model.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
    return &MemoryProfileRepository{profiles: map[string]*model.Profile{}}
}

func copyProfile(p *model.Profile) *model.Profile {
    out := *p
    if p.SocialMedia != nil {
        out.SocialMedia = make(map[string]string, len(p.SocialMedia))
        for k, v := range p.SocialMedia {
            out.SocialMedia[k] = v
        }
    }
    return &out
}

func (r *MemoryProfileRepository) Create(_ context.Context, p *model.Profile) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    for _, existing := range r.profiles {
        if strings.EqualFold(existing.Email, p.Email) {
            return appErrors.ErrEmailTaken
        }
    }
    p.CreatedAt = time.Now()
    if p.SubscriptionPlan == "" {
        p.SubscriptionPlan = model.PlanFree
    }
    r.profiles[p.ID] = copyProfile(p)
    return nil
}

func (r *MemoryProfileRepository) GetByID(_ context.Context, id string) (*model.Profile, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    p, ok := r.profiles[id]
    if !ok {
        return nil, appErrors.NewNotFound("profile", id)
    }
    return copyProfile(p), nil
}

func (r *MemoryProfileRepository) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    for _, p := range r.profiles {
        if strings.EqualFold(p.Email, email) {
            return copyProfile(p), nil
        }
    }
    return nil, appErrors.NewNotFound("profile", email)
}

func (r *MemoryProfileRepository) Update(_ context.Context, id string, fields map[string]any) (*model.Profile, error) {
    r.mu.Lock()
    defer r.mu.Unlock()
    p, ok := r.profiles[id]
    if !ok {
        return nil, appErrors.NewNotFound("profile", id)
    }
    next := copyProfile(p)
    for col, v := range fields {
        if err := applyProfileColumn(next, col, v); err != nil {
            return nil, err
        }
    }
    now := time.Now()
    next.UpdatedAt = &now
    r.profiles[id] = next
    return copyProfile(next), nil
}

func applyProfileColumn(p *model.Profile, col string, v any) error {
    bad := fmt.Errorf("profile column %q: unexpected value %T", col, v)
    switch col {
    case ColFullName, ColPhone, ColCity, ColBirthDate:
        s, ok := v.(string)
        if !ok {
            return bad
        }
        switch col {
        case ColFullName:
            p.FullName = s
        case ColPhone:
            p.Phone = s
        case ColCity:
            p.City = s
        case ColBirthDate:
            p.BirthDate = s
        }
    case ColSocialMedia:
        m, ok := v.(map[string]string)
        if !ok {
            return bad
        }
        p.SocialMedia = m
    case ColSubscriptionPlan:
        plan, ok := v.(model.Plan)
        if !ok {
            return bad
        }
        p.SubscriptionPlan = plan
    case ColSubscriptionExpiresAt, ColTermsAcceptedAt:
        t, ok := v.(*time.Time)
        if !ok {
            return bad
        }
        if col == ColTermsAcceptedAt {
            p.TermsAcceptedAt = t
        } else {
            p.SubscriptionExpiresAt = t
        }
    case ColProfileCompleted:
        b, ok := v.(bool)
        if !ok {
            return bad
        }
        p.ProfileCompleted = b
    default:
        return fmt.Errorf("profile column %q is not writable", col)
    }
    return nil
}

var _ ProfileStore = (*MemoryProfileRepository)(nil)
