package admin

import (
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var campaignErrorRules = []handlershared.MappedError{
	{Target: service.ErrCampaignNotFound, Code: response.CodeNotFound, Key: "error.campaign_not_found"},
	{Target: service.ErrCampaignCodeExists, Code: response.CodeConflict, Key: "error.campaign_code_exists"},
	{Target: service.ErrCampaignWindowInvalid, Code: response.CodeBadRequest, Key: "error.campaign_window_invalid"},
}

// GetAdminCampaigns 获取营销活动列表
func (h *Handler) GetAdminCampaigns(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	isActive, err := parseBoolQuery(c, "is_active")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	runningAt, err := parseTimeNullable(strings.TrimSpace(c.Query("running_at")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaigns, total, err := h.CampaignService.List(repository.CampaignListFilter{
		Page:      page,
		PageSize:  pageSize,
		Search:    strings.TrimSpace(c.Query("search")),
		IsActive:  isActive,
		RunningAt: runningAt,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.campaign_fetch_failed", err)
		return
	}
	respondPage(c, campaigns, page, pageSize, total)
}

// GetAdminCampaign 获取营销活动详情
func (h *Handler) GetAdminCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	campaign, err := h.CampaignService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.campaign_fetch_failed")
		return
	}
	response.Success(c, campaign)
}

// CreateCampaign 创建营销活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req service.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	campaign, err := h.CampaignService.Create(req)
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.campaign_save_failed")
		return
	}
	response.Success(c, campaign)
}

// UpdateCampaign 更新营销活动
func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req service.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	campaign, err := h.CampaignService.Update(id, req)
	if err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.campaign_save_failed")
		return
	}
	response.Success(c, campaign)
}

// DeleteCampaign 删除营销活动
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CampaignService.Delete(id); err != nil {
		respondWithMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.campaign_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
