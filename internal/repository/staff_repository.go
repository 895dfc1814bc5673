package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
)

// StaffRepository 员工数据访问接口
type StaffRepository interface {
	List(filter StaffListFilter) ([]models.StaffMember, int64, error)
	GetByID(id uint) (*models.StaffMember, error)
	Create(member *models.StaffMember) error
	Update(member *models.StaffMember) error
	Delete(id uint) error
}

// GormStaffRepository GORM 实现
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository 创建员工仓库
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// List 员工列表
func (r *GormStaffRepository) List(filter StaffListFilter) ([]models.StaffMember, int64, error) {
	query := r.db.Model(&models.StaffMember{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Shift != "" {
		query = query.Where("shift = ?", filter.Shift)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"name", "phone", "email"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}
	return findPage[models.StaffMember](query, filter.Page, filter.PageSize, "id DESC")
}

// GetByID 根据 ID 获取员工
func (r *GormStaffRepository) GetByID(id uint) (*models.StaffMember, error) {
	var member models.StaffMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// Create 创建员工
func (r *GormStaffRepository) Create(member *models.StaffMember) error {
	return r.db.Create(member).Error
}

// Update 更新员工
func (r *GormStaffRepository) Update(member *models.StaffMember) error {
	return r.db.Save(member).Error
}

// Delete 删除员工
func (r *GormStaffRepository) Delete(id uint) error {
	return r.db.Delete(&models.StaffMember{}, id).Error
}
