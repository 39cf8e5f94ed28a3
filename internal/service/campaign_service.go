// internal/service/campaign_service.go
package service

import (
    "context"
    "fmt"
    "strings"

    "github.com/sirupsen/logrus"

    appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
    "github.com/unclebandit/brandplay-backend/internal/model"
    "github.com/unclebandit/brandplay-backend/internal/queue"
    "github.com/unclebandit/brandplay-backend/internal/repository"
    "github.com/unclebandit/brandplay-backend/internal/wizard"
)

const rejectionReasonIncomplete = "Información incompleta"

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    Queue        queue.Queue
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(ctx context.Context, page, pageSize int, ownerID string, status model.CampaignStatus) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    if status != "" && !status.Valid() {
        return nil, nil, &appErrors.ValidationError{Fields: map[string]string{"status": "Estado desconocido"}}
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.List(ctx, offset, pageSize, ownerID, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

// GetCampaign fetches one campaign. Owned campaigns are only visible to
// their owner; fixture campaigns have no owner and are visible to all.
func (s *CampaignService) GetCampaign(ctx context.Context, id int, ownerID string) (*model.Campaign, error) {
    c, err := s.CampaignRepo.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if c.OwnerID != "" && c.OwnerID != ownerID {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    return c, nil
}

// SubmitDraft stores a completed wizard draft as a pending campaign and
// queues it for pre-review.
func (s *CampaignService) SubmitDraft(ctx context.Context, ownerID string, draft model.CampaignDraft) (*model.Campaign, error) {
    d := draft.Clone()
    c := &model.Campaign{
        OwnerID:      ownerID,
        Title:        d.Title,
        Author:       d.Author,
        Status:       model.StatusPending,
        StartDate:    d.StartDate,
        EndDate:      d.EndDate,
        Participants: 0,
        Draft:        &d,
    }
    if err := s.CampaignRepo.Create(ctx, c); err != nil {
        return nil, fmt.Errorf("store submitted campaign: %w", err)
    }

    s.publishSubmission(c.ID, false)
    logrus.WithFields(logrus.Fields{"campaign_id": c.ID, "owner_id": ownerID}).Info("✅ campaign submitted")
    return c, nil
}

// RejectedCampaign returns c only if it may be edited and resubmitted.
func (s *CampaignService) RejectedCampaign(ctx context.Context, id int, ownerID string) (*model.Campaign, error) {
    c, err := s.GetCampaign(ctx, id, ownerID)
    if err != nil {
        return nil, err
    }
    if c.Status != model.StatusRejected {
        return nil, appErrors.ErrNotRejected
    }
    return c, nil
}

// SaveResubmission replaces the stored draft, moves the campaign back to
// pending and queues it again.
func (s *CampaignService) SaveResubmission(ctx context.Context, id int, draft model.CampaignDraft) error {
    if err := s.CampaignRepo.Resubmit(ctx, id, draft.Clone()); err != nil {
        return err
    }
    s.publishSubmission(id, true)
    logrus.WithField("campaign_id", id).Info("✅ campaign resubmitted")
    return nil
}

func (s *CampaignService) publishSubmission(id int, resubmitted bool) {
    if s.Queue == nil {
        return
    }
    ev := queue.SubmissionEvent{CampaignID: id, Resubmitted: resubmitted}
    if err := s.Queue.Publish(queue.TopicCampaignSubmissions, ev); err != nil {
        // the campaign stays pending for manual review
        logrus.WithField("campaign_id", id).WithError(err).Warn("⚠️ failed to enqueue submission")
    }
}

// ReviewSubmission is the automated pre-review. A pending campaign whose
// draft is missing required data is rejected with a detail text naming the
// offending fields; anything else is left for manual review.
func (s *CampaignService) ReviewSubmission(ctx context.Context, id int) error {
    c, err := s.CampaignRepo.GetByID(ctx, id)
    if err != nil {
        if appErrors.IsNotFound(err) {
            logrus.WithField("campaign_id", id).Warn("⚠️ submitted campaign vanished, skipping review")
            return nil
        }
        return err
    }
    entry := logrus.WithField("campaign_id", id)
    if c.Status != model.StatusPending || c.Draft == nil {
        entry.Debugf("nothing to review in status %s", c.Status)
        return nil
    }

    issues := wizard.MissingRequired(*c.Draft)
    if len(issues) == 0 {
        entry.Info("✅ pre-review passed, awaiting manual review")
        return nil
    }

    detail := RejectionDetail(issues)
    if err := s.CampaignRepo.UpdateStatus(ctx, id, model.StatusRejected, rejectionReasonIncomplete, detail); err != nil {
        return err
    }
    entry.WithField("detail", detail).Info("📩 campaign rejected by pre-review")
    return nil
}

// fieldWording names each draft field the way reviewers write rejection
// notes, so the edit screen can point back at the same fields.
var fieldWording = map[string]string{
    wizard.FieldTitle:         "título",
    wizard.FieldAuthor:        "autor",
    wizard.FieldDescription:   "descripción",
    wizard.FieldStartDate:     "fecha de inicio",
    wizard.FieldEndDate:       "fecha de fin",
    wizard.FieldMiniGame:      "minijuego",
    wizard.FieldAddOns:        "complementos",
    wizard.FieldFAQs:          "preguntas frecuentes",
    wizard.FieldTerms:         "términos y condiciones",
    wizard.FieldBonusLevel:    "nivel bonus",
    wizard.FieldSpecialReward: "premio especial",
    wizard.FieldTopRanking:    "premios del ranking",
    wizard.FieldVideoEmbed:    "vídeo",
}

// RejectionDetail renders issues as a reviewer note, one mention per field.
func RejectionDetail(issues []model.FieldError) string {
    seen := map[string]bool{}
    var parts []string
    for _, is := range issues {
        if seen[is.Field] {
            continue
        }
        seen[is.Field] = true
        if w, ok := fieldWording[is.Field]; ok {
            parts = append(parts, w)
        }
    }
    if len(parts) == 0 {
        return ""
    }
    return "Revisa los siguientes campos: " + strings.Join(parts, ", ") + "."
}
