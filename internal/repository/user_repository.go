package repository

import (
	"errors"
	"strings"

	"github.com/rasoi-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 顾客数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByIDForUpdate(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdatePoints(id uint, points int64) error
	List(filter UserListFilter) ([]models.User, int64, error)
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建顾客仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByEmail 根据邮箱获取顾客
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取顾客
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDForUpdate 行锁读取顾客（sqlite 下退化为普通读取）
func (r *GormUserRepository) GetByIDForUpdate(id uint) (*models.User, error) {
	query := r.db
	if isPostgresDialect(dbDialectName(r.db)) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user models.User
	if err := query.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建顾客
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新顾客
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdatePoints 更新积分余额
func (r *GormUserRepository) UpdatePoints(id uint, points int64) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("loyalty_points", points).Error
}

// List 顾客列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"email", "display_name", "phone"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return findPage[models.User](query, filter.Page, filter.PageSize, "id DESC")
}
