package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "sort"
    "strings"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
    "github.com/unclebandit/brandplay-backend/internal/model"
)

// Profile columns the service may write. Anything else is refused so the
// column names never reach SQL unchecked.
const (
    ColFullName              = "full_name"
    ColPhone                 = "phone"
    ColCity                  = "city"
    ColBirthDate             = "birth_date"
    ColSocialMedia           = "social_media"
    ColSubscriptionPlan      = "subscription_plan"
    ColSubscriptionExpiresAt = "subscription_expires_at"
    ColTermsAcceptedAt       = "terms_accepted_at"
    ColProfileCompleted      = "profile_completed"
)

var writableProfileColumns = map[string]bool{
    ColFullName: true, ColPhone: true, ColCity: true, ColBirthDate: true, ColSocialMedia: true,
    ColSubscriptionPlan: true, ColSubscriptionExpiresAt: true, ColTermsAcceptedAt: true, ColProfileCompleted: true,
}

// ProfileStore is the external profile record keyed by user id. Updates are
// opaque column/value pairs; the store returns the record as written.
type ProfileStore interface {
    Create(ctx context.Context, p *model.Profile) error
    GetByID(ctx context.Context, id string) (*model.Profile, error)
    GetByEmail(ctx context.Context, email string) (*model.Profile, error)
    Update(ctx context.Context, id string, fields map[string]any) (*model.Profile, error)
}

type ProfileRepository struct {
    DB *sql.DB
}

const profileColumns = `id, email, password_hash, provider, full_name, phone, city, birth_date, social_media,
        subscription_plan, subscription_expires_at, terms_accepted_at, profile_completed, created_at, updated_at`

func scanProfile(row rowScanner) (*model.Profile, error) {
    var p model.Profile
    var social []byte
    var plan string
    err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Provider, &p.FullName, &p.Phone, &p.City, &p.BirthDate, &social,
        &plan, &p.SubscriptionExpiresAt, &p.TermsAcceptedAt, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
    if err != nil {
        return nil, err
    }
    p.SubscriptionPlan = model.Plan(plan)
    if len(social) > 0 {
        if err := json.Unmarshal(social, &p.SocialMedia); err != nil {
            return nil, fmt.Errorf("decode social media of profile %s: %w", p.ID, err)
        }
    }
    return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
    p.CreatedAt = time.Now()
    if p.SubscriptionPlan == "" {
        p.SubscriptionPlan = model.PlanFree
    }
    social, err := json.Marshal(p.SocialMedia)
    if err != nil {
        return err
    }
    query := `
        INSERT INTO profiles (id, email, password_hash, provider, full_name, phone, city, birth_date, social_media,
            subscription_plan, subscription_expires_at, terms_accepted_at, profile_completed, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
    _, err = r.DB.ExecContext(ctx, query, p.ID, p.Email, p.PasswordHash, p.Provider, p.FullName, p.Phone, p.City,
        p.BirthDate, social, string(p.SubscriptionPlan), p.SubscriptionExpiresAt, p.TermsAcceptedAt, p.ProfileCompleted, p.CreatedAt)
    if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
        return appErrors.ErrEmailTaken
    }
    return err
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
    p, err := scanProfile(r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id=$1`, id))
    if err == sql.ErrNoRows {
        return nil, appErrors.NewNotFound("profile", id)
    }
    return p, err
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
    p, err := scanProfile(r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email)=lower($1)`, email))
    if err == sql.ErrNoRows {
        return nil, appErrors.NewNotFound("profile", email)
    }
    return p, err
}

func (r *ProfileRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.Profile, error) {
    if len(fields) == 0 {
        return r.GetByID(ctx, id)
    }
    cols := make([]string, 0, len(fields))
    for col := range fields {
        if !writableProfileColumns[col] {
            return nil, fmt.Errorf("profile column %q is not writable", col)
        }
        cols = append(cols, col)
    }
    sort.Strings(cols)

    sets := make([]string, 0, len(cols)+1)
    args := make([]any, 0, len(cols)+1)
    for i, col := range cols {
        v := fields[col]
        switch val := v.(type) {
        case map[string]string:
            b, err := json.Marshal(val)
            if err != nil {
                return nil, err
            }
            v = b
        case model.Plan:
            v = string(val)
        }
        sets = append(sets, fmt.Sprintf("%s=$%d", col, i+1))
        args = append(args, v)
    }
    args = append(args, id)
    query := fmt.Sprintf(`UPDATE profiles SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s`,
        strings.Join(sets, ", "), len(args), profileColumns)

    p, err := scanProfile(r.DB.QueryRowContext(ctx, query, args...))
    if err == sql.ErrNoRows {
        return nil, appErrors.NewNotFound("profile", id)
    }
    return p, err
}

var _ ProfileStore = (*ProfileRepository)(nil)
