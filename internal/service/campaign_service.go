package service

import (
	"strings"
	"time"

	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CampaignService 营销活动服务，活动仅做运营记录，不参与计价
type CampaignService struct {
	repo repository.CampaignRepository
}

// NewCampaignService 创建营销活动服务
func NewCampaignService(repo repository.CampaignRepository) *CampaignService {
	return &CampaignService{repo: repo}
}

// CampaignInput 创建/更新活动输入
type CampaignInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Code        string     `json:"code" validate:"required,max=64,alphanumunicode"`
	Description string     `json:"description" validate:"max=2000"`
	Type        string     `json:"type" validate:"required,oneof=percent fixed"`
	Value       string     `json:"value" validate:"required"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsActive    *bool      `json:"is_active"`
}

// List 活动列表
func (s *CampaignService) List(filter repository.CampaignListFilter) ([]models.Campaign, int64, error) {
	return s.repo.List(filter)
}

// ListRunning 当前生效的活动，用于前台展示
func (s *CampaignService) ListRunning(now time.Time) ([]models.Campaign, error) {
	active := true
	campaigns, _, err := s.repo.List(repository.CampaignListFilter{Page: 1, PageSize: 50, IsActive: &active, RunningAt: &now})
	return campaigns, err
}

// Get 活动详情
func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return campaign, nil
}

// Create 创建活动
func (s *CampaignService) Create(input CampaignInput) (*models.Campaign, error) {
	campaign := &models.Campaign{IsActive: true}
	if err := s.apply(campaign, input, 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Update 更新活动
func (s *CampaignService) Update(id uint, input CampaignInput) (*models.Campaign, error) {
	campaign, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(campaign, input, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Delete 删除活动
func (s *CampaignService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *CampaignService) apply(campaign *models.Campaign, input CampaignInput, excludeID uint) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if err := validateStruct(input); err != nil {
		return err
	}
	value, err := models.ParseMoney(strings.TrimSpace(input.Value))
	if err != nil || !value.IsPositive() {
		return &ValidationError{Fields: map[string]string{"value": "value must be a positive amount"}}
	}
	if input.Type == constants.CampaignTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return &ValidationError{Fields: map[string]string{"value": "percent value must not exceed 100"}}
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.EndsAt.After(*input.StartsAt) {
		return ErrCampaignWindowInvalid
	}
	count, err := s.repo.CountByCode(input.Code, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCampaignCodeExists
	}

	campaign.Name = strings.TrimSpace(input.Name)
	campaign.Code = input.Code
	campaign.Description = strings.TrimSpace(input.Description)
	campaign.Type = input.Type
	campaign.Value = value
	campaign.StartsAt = input.StartsAt
	campaign.EndsAt = input.EndsAt
	if input.IsActive != nil {
		campaign.IsActive = *input.IsActive
	}
	return nil
}
