package service

import (
	"strings"
	"time"

	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// StaffService 员工管理服务
type StaffService struct {
	repo repository.StaffRepository
}

// NewStaffService 创建员工服务
func NewStaffService(repo repository.StaffRepository) *StaffService {
	return &StaffService{repo: repo}
}

// StaffInput 创建/更新员工输入
type StaffInput struct {
	Name     string     `json:"name" validate:"required,max=120"`
	Role     string     `json:"role" validate:"required,oneof=manager chef cashier rider waiter cleaning"`
	Phone    string     `json:"phone" validate:"omitempty,max=32"`
	Email    string     `json:"email" validate:"omitempty,email,max=255"`
	Shift    string     `json:"shift" validate:"omitempty,oneof=morning evening night"`
	IsActive *bool      `json:"is_active"`
	JoinedAt *time.Time `json:"joined_at"`
}

// List 员工列表
func (s *StaffService) List(filter repository.StaffListFilter) ([]models.StaffMember, int64, error) {
	return s.repo.List(filter)
}

// Get 员工详情
func (s *StaffService) Get(id uint) (*models.StaffMember, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrStaffNotFound
	}
	return member, nil
}

// Create 新增员工
func (s *StaffService) Create(input StaffInput) (*models.StaffMember, error) {
	member := &models.StaffMember{IsActive: true}
	if err := applyStaffInput(member, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Update 更新员工
func (s *StaffService) Update(id uint, input StaffInput) (*models.StaffMember, error) {
	member, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := applyStaffInput(member, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete 删除员工
func (s *StaffService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func applyStaffInput(member *models.StaffMember, input StaffInput) error {
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	input.Shift = strings.ToLower(strings.TrimSpace(input.Shift))
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return err
	}
	member.Name = strings.TrimSpace(input.Name)
	member.Role = input.Role
	member.Phone = strings.TrimSpace(input.Phone)
	member.Email = input.Email
	member.Shift = input.Shift
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if input.JoinedAt != nil {
		member.JoinedAt = input.JoinedAt
	}
	return nil
}
