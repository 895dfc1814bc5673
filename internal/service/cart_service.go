package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

// CartView 购物车视图（含价格明细）
type CartView struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Quote     PriceQuote        `json:"quote"`
}

// AddCartItemInput 加购输入，MenuItemID 与 Slug 二选一
type AddCartItemInput struct {
	UserID     uint
	MenuItemID uint
	Slug       string
	Quantity   int
}

// CartService 购物车服务
type CartService struct {
	cartRepo     repository.CartRepository
	menuItemRepo repository.MenuItemRepository
	pricing      PricingPolicy
	maxQuantity  int
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuItemRepo repository.MenuItemRepository, pricing PricingPolicy, maxQuantity int) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		menuItemRepo: menuItemRepo,
		pricing:      pricing,
		maxQuantity:  maxQuantity,
	}
}

// Load 读取用户购物车
func (s *CartService) Load(userID uint) (*Cart, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	rows, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	cart := NewCart(rows...)
	cart.SetLimit(s.maxQuantity)
	return cart, nil
}

// Get 获取购物车视图
func (s *CartService) Get(userID uint) (*CartView, error) {
	cart, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *CartService) view(cart *Cart) *CartView {
	items := cart.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return &CartView{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Quote:     s.pricing.Quote(cart.Subtotal()),
	}
}

// AddItem 加入购物车，单价与名称以当前菜单为准
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	menuItem, err := s.resolveMenuItem(input)
	if err != nil {
		return nil, err
	}
	cart, err := s.Load(input.UserID)
	if err != nil {
		return nil, err
	}
	snapshot := s.snapshot(menuItem)
	qty := input.Quantity
	if qty < 1 {
		qty = 1
	}
	cart.Refresh(snapshot)
	line, err := cart.AddItem(snapshot, qty)
	if err != nil {
		return nil, err
	}
	line.UserID = input.UserID
	line.UpdatedAt = time.Now()
	if err := s.cartRepo.Upsert(&line); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *CartService) resolveMenuItem(input AddCartItemInput) (*models.MenuItem, error) {
	var (
		menuItem *models.MenuItem
		err      error
	)
	switch {
	case input.MenuItemID > 0:
		menuItem, err = s.menuItemRepo.GetByID(input.MenuItemID)
	case strings.TrimSpace(input.Slug) != "":
		menuItem, err = s.menuItemRepo.GetBySlug(strings.TrimSpace(input.Slug), false)
	default:
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, ErrMenuItemNotFound
	}
	if !menuItem.IsActive {
		return nil, ErrMenuItemUnavailable
	}
	return menuItem, nil
}

func (s *CartService) snapshot(menuItem *models.MenuItem) models.CartItem {
	return models.CartItem{
		ItemID:     strconv.FormatUint(uint64(menuItem.ID), 10),
		MenuItemID: menuItem.ID,
		Name:       menuItem.Name,
		UnitPrice:  menuItem.Price,
		Attributes: menuItem.Attributes,
	}
}

// UpdateQuantity 修改数量，0 表示移除
func (s *CartService) UpdateQuantity(userID uint, itemID string, qty int) (*CartView, error) {
	cart, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	line, err := cart.UpdateQuantity(itemID, qty)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		if err := s.cartRepo.DeleteByUserAndItem(userID, itemID); err != nil {
			return nil, err
		}
		return s.view(cart), nil
	}
	line.UserID = userID
	line.UpdatedAt = time.Now()
	if err := s.cartRepo.Upsert(&line); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// RemoveItem 移除购物车项，不存在时忽略
func (s *CartService) RemoveItem(userID uint, itemID string) (*CartView, error) {
	cart, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	if cart.RemoveItem(itemID) {
		if err := s.cartRepo.DeleteByUserAndItem(userID, itemID); err != nil {
			return nil, err
		}
	}
	return s.view(cart), nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	return s.cartRepo.ClearByUser(userID)
}
