// internal/controller/campaign_controller.go
package controller

import (
    "net/http"
    "strconv"

    "github.com/unclebandit/brandplay-backend/internal/handler"
    "github.com/unclebandit/brandplay-backend/internal/model"
    "github.com/unclebandit/brandplay-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
    CatalogService  *service.CatalogService
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    user := handler.UserFrom(r.Context())

    // Parse query parameters
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    status := model.CampaignStatus(r.URL.Query().Get("status"))

    // Default values if missing
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(r.Context(), page, pageSize, user.ID, status)
    if err != nil {
        handler.WriteError(w, err)
        return
    }

    handler.WriteJSON(w, http.StatusOK, map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination, // already contains total_count, total_pages, page, page_size
    })
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
    id, err := handler.IntParam(r, "id")
    if err != nil {
        handler.WriteError(w, err)
        return
    }

    campaign, err := c.CampaignService.GetCampaign(r.Context(), id, handler.UserFrom(r.Context()).ID)
    if err != nil {
        handler.WriteError(w, err)
        return
    }

    handler.WriteJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) Dashboard(w http.ResponseWriter, r *http.Request) {
    dash, err := c.CatalogService.Dashboard(r.Context(), handler.UserFrom(r.Context()).ID)
    if err != nil {
        handler.WriteError(w, err)
        return
    }

    handler.WriteJSON(w, http.StatusOK, dash)
}
