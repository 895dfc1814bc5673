package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 营销活动数据访问接口
type CampaignRepository interface {
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)
	GetByID(id uint) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	Delete(id uint) error
	CountByCode(code string, excludeID uint) (int64, error)
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建营销活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// List 营销活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.RunningAt != nil {
		at := *filter.RunningAt
		query = query.Where("is_active = ?", true).
			Where("starts_at IS NULL OR starts_at <= ?", at).
			Where("ends_at IS NULL OR ends_at > ?", at)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "code"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	return findPage[models.Campaign](query, filter.Page, filter.PageSize, "id DESC")
}

// GetByID 根据 ID 获取营销活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create 创建营销活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update 更新营销活动
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete 删除营销活动
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

// CountByCode 统计活动码数量
func (r *GormCampaignRepository) CountByCode(code string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Campaign{}).Where("code = ?", code)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
