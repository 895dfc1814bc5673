package repository

import "time"

// MenuItemListFilter 查询菜品列表的过滤条件
type MenuItemListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	CategorySlug string
	Attribute    string
	Search       string
	OnlyActive   bool
	OnlyFeatured bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	OrderNo       string
	CustomerEmail string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserListFilter 查询顾客列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// LoyaltyTransactionListFilter 查询积分流水的过滤条件
type LoyaltyTransactionListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Type     string
}

// InventoryListFilter 查询库存物料的过滤条件
type InventoryListFilter struct {
	Page         int
	PageSize     int
	Search       string
	OnlyLowStock bool
}

// StaffListFilter 查询员工列表的过滤条件
type StaffListFilter struct {
	Page     int
	PageSize int
	Role     string
	Shift    string
	Search   string
	IsActive *bool
}

// CampaignListFilter 查询营销活动的过滤条件
type CampaignListFilter struct {
	Page      int
	PageSize  int
	Search    string
	IsActive  *bool
	RunningAt *time.Time
}
