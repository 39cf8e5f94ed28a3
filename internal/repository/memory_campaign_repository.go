package repository

import (
    "context"
    "sort"
    "sync"
    "time"

    appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
    "github.com/unclebandit/brandplay-backend/internal/model"
)

// MemoryCampaignRepository keeps campaigns in process. It backs the service
// when no database is configured.
type MemoryCampaignRepository struct {
    mu        sync.RWMutex
    campaigns map[int]*model.Campaign
    nextID    int
}

func NewMemoryCampaignRepository(seed ...model.Campaign) *MemoryCampaignRepository {
    r := &MemoryCampaignRepository{campaigns: map[int]*model.Campaign{}}
    for i := range seed {
        c := seed[i]
        if c.ID > r.nextID {
            r.nextID = c.ID
        }
        r.campaigns[c.ID] = &c
    }
    return r
}

func copyCampaign(c *model.Campaign) *model.Campaign {
    out := *c
    if c.Draft != nil {
        d := c.Draft.Clone()
        out.Draft = &d
    }
    return &out
}

func (r *MemoryCampaignRepository) Create(_ context.Context, c *model.Campaign) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.nextID++
    c.ID = r.nextID
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusPending
    }
    r.campaigns[c.ID] = copyCampaign(c)
    return nil
}

func (r *MemoryCampaignRepository) GetByID(_ context.Context, id int) (*model.Campaign, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    c, ok := r.campaigns[id]
    if !ok {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    return copyCampaign(c), nil
}

func (r *MemoryCampaignRepository) UpdateStatus(_ context.Context, id int, status model.CampaignStatus, reason, detail string) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    c, ok := r.campaigns[id]
    if !ok {
        return appErrors.NewCampaignNotFound(id)
    }
    now := time.Now()
    c.Status, c.RejectionReason, c.RejectionDetail, c.UpdatedAt = status, reason, detail, &now
    return nil
}

func (r *MemoryCampaignRepository) Resubmit(_ context.Context, id int, d model.CampaignDraft) error {
    r.mu.Lock()
    defer r.mu.Unlock()
    c, ok := r.campaigns[id]
    if !ok {
        return appErrors.NewCampaignNotFound(id)
    }
    if c.Status != model.StatusRejected {
        return appErrors.ErrNotRejected
    }
    now := time.Now()
    draft := d.Clone()
    c.Title, c.Author, c.StartDate, c.EndDate = d.Title, d.Author, d.StartDate, d.EndDate
    c.Draft = &draft
    c.Status = model.StatusPending
    c.RejectionReason, c.RejectionDetail = "", ""
    c.UpdatedAt = &now
    return nil
}

func (r *MemoryCampaignRepository) List(_ context.Context, offset, limit int, ownerID string, status model.CampaignStatus) ([]*model.Campaign, int, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()

    var filtered []*model.Campaign
    for _, c := range r.campaigns {
        if ownerID != "" && c.OwnerID != ownerID {
            continue
        }
        if status != "" && c.Status != status {
            continue
        }
        filtered = append(filtered, c)
    }
    sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID > filtered[j].ID })

    total := len(filtered)
    if offset >= total {
        return []*model.Campaign{}, total, nil
    }
    end := offset + limit
    if end > total {
        end = total
    }
    out := make([]*model.Campaign, 0, end-offset)
    for _, c := range filtered[offset:end] {
        out = append(out, copyCampaign(c))
    }
    return out, total, nil
}

func (r *MemoryCampaignRepository) CountByStatus(_ context.Context, ownerID string) (map[model.CampaignStatus]int, error) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    stats := map[model.CampaignStatus]int{
        model.StatusPending:   0,
        model.StatusActive:    0,
        model.StatusRejected:  0,
        model.StatusCompleted: 0,
    }
    for _, c := range r.campaigns {
        if ownerID == "" || c.OwnerID == ownerID {
            stats[c.Status]++
        }
    }
    return stats, nil
}

var _ CampaignRepositoryInterface = (*MemoryCampaignRepository)(nil)
