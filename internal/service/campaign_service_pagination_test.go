package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// ✅ Mock Campaign Repository for pagination
type MockCampaignPaginationRepo struct{}

func (m *MockCampaignPaginationRepo) List(_ context.Context, offset, limit int, ownerID string, status model.CampaignStatus) ([]*model.Campaign, int, error) {
	all := []*model.Campaign{
		{ID: 5, Title: "C5"},
		{ID: 4, Title: "C4"},
		{ID: 3, Title: "C3"},
		{ID: 2, Title: "C2"},
		{ID: 1, Title: "C1"},
	}

	start := offset
	end := offset + limit

	if start >= len(all) {
		return []*model.Campaign{}, len(all), nil
	}
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], len(all), nil
}

// Stub implementations to satisfy the interface
func (m *MockCampaignPaginationRepo) Create(_ context.Context, c *model.Campaign) error {
	c.ID = 999 // fake ID
	return nil
}

func (m *MockCampaignPaginationRepo) GetByID(_ context.Context, id int) (*model.Campaign, error) {
	return &model.Campaign{ID: id, Title: "Mock"}, nil
}

func (m *MockCampaignPaginationRepo) UpdateStatus(_ context.Context, id int, status model.CampaignStatus, reason, detail string) error {
	return nil
}

func (m *MockCampaignPaginationRepo) Resubmit(_ context.Context, id int, d model.CampaignDraft) error {
	return nil
}

func (m *MockCampaignPaginationRepo) CountByStatus(_ context.Context, ownerID string) (map[model.CampaignStatus]int, error) {
	return map[model.CampaignStatus]int{}, nil
}

func TestPagination(t *testing.T) {
	svc := &service.CampaignService{
		CampaignRepo: &MockCampaignPaginationRepo{},
	}
	ctx := context.Background()

	pageSize := 2

	page1, pagination1, _ := svc.ListCampaigns(ctx, 1, pageSize, "owner", "")
	page2, _, _ := svc.ListCampaigns(ctx, 2, pageSize, "owner", "")

	expectedTotal := 5
	if pagination1["total_count"] != expectedTotal {
		t.Errorf("expected total_count %d, got %d", expectedTotal, pagination1["total_count"])
	}
	if pagination1["total_pages"] != 3 {
		t.Errorf("expected 3 pages, got %d", pagination1["total_pages"])
	}

	if len(page1) != 2 || len(page2) != 2 {
		t.Fatalf("expected full pages, got %d and %d", len(page1), len(page2))
	}

	// Check descending order
	if page1[0].ID <= page1[1].ID {
		t.Errorf("expected descending order in page 1")
	}
	if page2[0].ID <= page2[1].ID {
		t.Errorf("expected descending order in page 2")
	}

	// Check no duplicates between pages
	if page1[1].ID == page2[0].ID {
		t.Errorf("duplicate entry between pages: %v", page1[1].ID)
	}

	page3, pagination3, _ := svc.ListCampaigns(ctx, 3, pageSize, "owner", "")
	if len(page3) != 1 {
		t.Errorf("expected last page to have 1 item, got %d", len(page3))
	}

	if pagination3["total_count"] != expectedTotal {
		t.Errorf("expected total_count %d, got %d", expectedTotal, pagination3["total_count"])
	}
}

func TestPaginationRejectsUnknownStatus(t *testing.T) {
	svc := &service.CampaignService{CampaignRepo: &MockCampaignPaginationRepo{}}

	_, _, err := svc.ListCampaigns(context.Background(), 1, 10, "owner", "draft")
	var verr *appErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["status"]; !ok {
		t.Errorf("expected status field error, got %v", verr.Fields)
	}
}
