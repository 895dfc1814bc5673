package service

import (
	"strings"

	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// Get 获取订单详情
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo 按订单号获取订单
func (s *OrderService) GetByOrderNo(orderNo string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByCustomer 按联系邮箱获取订单
func (s *OrderService) ListByCustomer(email string, page, pageSize int) ([]models.Order, int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return []models.Order{}, 0, nil
	}
	return s.orderRepo.ListByEmail(email, page, pageSize)
}

// GetForUser 获取顾客自己的订单
func (s *OrderService) GetForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForUser 顾客订单列表
func (s *OrderService) ListForUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrUnauthorized
	}
	filter.Status = normalizeOrderStatus(filter.Status)
	return s.orderRepo.ListByUser(filter)
}

// Track 订单追踪：订单号与联系邮箱需同时匹配
func (s *OrderService) Track(orderNo, email string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	email = strings.TrimSpace(email)
	if orderNo == "" || email == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndEmail(orderNo, email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 后台订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = normalizeOrderStatus(filter.Status)
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	filter.CustomerEmail = strings.ToLower(strings.TrimSpace(filter.CustomerEmail))
	return s.orderRepo.ListAdmin(filter)
}
