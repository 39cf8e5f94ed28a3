package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "time"

    appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
    "github.com/unclebandit/brandplay-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    List(ctx context.Context, offset, limit int, ownerID string, status model.CampaignStatus) ([]*model.Campaign, int, error)
    GetByID(ctx context.Context, id int) (*model.Campaign, error)
    Create(ctx context.Context, c *model.Campaign) error
    UpdateStatus(ctx context.Context, id int, status model.CampaignStatus, reason, detail string) error
    Resubmit(ctx context.Context, id int, draft model.CampaignDraft) error
    CountByStatus(ctx context.Context, ownerID string) (map[model.CampaignStatus]int, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

const campaignColumns = `id, owner_id, title, author, status, start_date, end_date, participants,
        rejection_reason, rejection_detail, draft, created_at, updated_at`

type rowScanner interface {
    Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*model.Campaign, error) {
    var c model.Campaign
    var draft []byte
    err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Author, &c.Status, &c.StartDate, &c.EndDate, &c.Participants,
        &c.RejectionReason, &c.RejectionDetail, &draft, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if len(draft) > 0 {
        c.Draft = &model.CampaignDraft{}
        if err := json.Unmarshal(draft, c.Draft); err != nil {
            return nil, fmt.Errorf("decode draft of campaign %d: %w", c.ID, err)
        }
    }
    return &c, nil
}

func encodeDraft(d *model.CampaignDraft) ([]byte, error) {
    if d == nil {
        return nil, nil
    }
    return json.Marshal(d)
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusPending
    }
    draft, err := encodeDraft(c.Draft)
    if err != nil {
        return err
    }
    query := `
        INSERT INTO campaigns (owner_id, title, author, status, start_date, end_date, participants,
            rejection_reason, rejection_detail, draft, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
    return r.DB.QueryRowContext(ctx, query, c.OwnerID, c.Title, c.Author, string(c.Status), c.StartDate, c.EndDate,
        c.Participants, c.RejectionReason, c.RejectionDetail, draft, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) UpdateStatus(ctx context.Context, id int, status model.CampaignStatus, reason, detail string) error {
    query := `UPDATE campaigns SET status=$1, rejection_reason=$2, rejection_detail=$3, updated_at=$4 WHERE id=$5`
    res, err := r.DB.ExecContext(ctx, query, string(status), reason, detail, time.Now(), id)
    if err != nil {
        return err
    }
    return expectRow(res, id)
}

// Resubmit stores the edited draft and puts the campaign back in review.
// Only a rejected campaign can be resubmitted; anything else is left as is
// and reported as ErrNotRejected.
func (r *CampaignRepository) Resubmit(ctx context.Context, id int, d model.CampaignDraft) error {
    draft, err := encodeDraft(&d)
    if err != nil {
        return err
    }
    query := `
        UPDATE campaigns
        SET title=$1, author=$2, start_date=$3, end_date=$4, draft=$5, status=$6,
            rejection_reason='', rejection_detail='', updated_at=NOW()
        WHERE id=$7 AND status=$8
    `
    res, err := r.DB.ExecContext(ctx, query, d.Title, d.Author, d.StartDate, d.EndDate, draft,
        string(model.StatusPending), id, string(model.StatusRejected))
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n > 0 {
        return nil
    }
    var exists bool
    if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM campaigns WHERE id=$1)`, id).Scan(&exists); err != nil {
        return err
    }
    if !exists {
        return appErrors.NewCampaignNotFound(id)
    }
    return appErrors.ErrNotRejected
}

func expectRow(res sql.Result, id int) error {
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return appErrors.NewCampaignNotFound(id)
    }
    return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
    query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
    c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }
    return c, nil
}

func (r *CampaignRepository) List(ctx context.Context, offset, limit int, ownerID string, status model.CampaignStatus) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    where := ` WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if ownerID != "" {
        where += fmt.Sprintf(" AND owner_id=$%d", argPos)
        args = append(args, ownerID)
        argPos++
    }
    if status != "" {
        where += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, string(status))
        argPos++
    }

    var total int
    if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    query := `SELECT ` + campaignColumns + ` FROM campaigns` + where +
        fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    rows, err := r.DB.QueryContext(ctx, query, append(args, limit, offset)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c, err := scanCampaign(rows)
        if err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, total, rows.Err()
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, ownerID string) (map[model.CampaignStatus]int, error) {
    query := `SELECT status, COUNT(*) FROM campaigns WHERE ($1 = '' OR owner_id = $1) GROUP BY status`
    rows, err := r.DB.QueryContext(ctx, query, ownerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[model.CampaignStatus]int{
        model.StatusPending:   0,
        model.StatusActive:    0,
        model.StatusRejected:  0,
        model.StatusCompleted: 0,
    }
    for rows.Next() {
        var status model.CampaignStatus
        var count int
        if err := rows.Scan(&status, &count); err != nil {
            return nil, err
        }
        stats[status] = count
    }
    return stats, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
