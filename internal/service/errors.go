package service

import (
	"errors"
	"fmt"
)

// 通用错误分类，业务错误通过 %w 归入其中之一
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// 菜单
var (
	ErrCategoryNotFound    = fmt.Errorf("%w: category", ErrNotFound)
	ErrCategoryInUse       = fmt.Errorf("%w: category still has menu items", ErrConflict)
	ErrMenuItemNotFound    = fmt.Errorf("%w: menu item", ErrNotFound)
	ErrMenuItemUnavailable = fmt.Errorf("%w: menu item unavailable", ErrValidation)
	ErrSlugExists          = fmt.Errorf("%w: slug already exists", ErrConflict)
)

// 购物车
var (
	ErrCartEmpty        = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	ErrQuantityTooLarge = fmt.Errorf("%w: quantity exceeds limit", ErrValidation)
)

// 订单
var (
	ErrOrderNotFound        = fmt.Errorf("%w: order", ErrNotFound)
	ErrInvalidOrderStatus   = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unsupported payment method", ErrValidation)
)

// 积分
var (
	ErrPointsInsufficient = fmt.Errorf("%w: points balance would go negative", ErrValidation)
	ErrInvalidPoints      = fmt.Errorf("%w: points must be non-zero", ErrValidation)
)

// 后台资源
var (
	ErrInventoryItemNotFound = fmt.Errorf("%w: inventory item", ErrNotFound)
	ErrSKUExists             = fmt.Errorf("%w: sku already exists", ErrConflict)
	ErrStockInsufficient     = fmt.Errorf("%w: stock would go negative", ErrValidation)
	ErrStaffNotFound         = fmt.Errorf("%w: staff member", ErrNotFound)
	ErrCampaignNotFound      = fmt.Errorf("%w: campaign", ErrNotFound)
	ErrCampaignCodeExists    = fmt.Errorf("%w: campaign code already exists", ErrConflict)
	ErrCampaignWindowInvalid = fmt.Errorf("%w: campaign ends before it starts", ErrValidation)
	ErrReportRangeInvalid    = fmt.Errorf("%w: report range", ErrValidation)
)

// 认证
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUserDisabled         = errors.New("user disabled")
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrNotFound)
	ErrAdminNotFound        = fmt.Errorf("%w: admin", ErrNotFound)
	ErrEmailExists          = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrWeakPassword         = fmt.Errorf("%w: password too weak", ErrValidation)
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)
