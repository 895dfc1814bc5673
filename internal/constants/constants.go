package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
)

// 订单状态变更来源
const (
	OrderStatusSourceSystem = "system"
	OrderStatusSourceAuto   = "auto"
	OrderStatusSourceAdmin  = "admin"
)

// 支付方式常量
const (
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodCard           = "card"
	PaymentMethodUPI            = "upi"
	PaymentMethodWallet         = "wallet"
)

// 会员等级常量
const (
	LoyaltyTierBronze   = "Bronze"
	LoyaltyTierSilver   = "Silver"
	LoyaltyTierGold     = "Gold"
	LoyaltyTierPlatinum = "Platinum"
)

// 积分流水类型
const (
	LoyaltyTxnTypeOrderEarn   = "order_earn"
	LoyaltyTxnTypeAdminAdjust = "admin_adjust"
)

// 营销活动类型
const (
	CampaignTypePercent = "percent"
	CampaignTypeFixed   = "fixed"
)

// 员工岗位
const (
	StaffRoleManager  = "manager"
	StaffRoleChef     = "chef"
	StaffRoleCashier  = "cashier"
	StaffRoleRider    = "rider"
	StaffRoleWaiter   = "waiter"
	StaffRoleCleaning = "cleaning"
)

// 员工班次
const (
	StaffShiftMorning = "morning"
	StaffShiftEvening = "evening"
	StaffShiftNight   = "night"
)

// 订单事件类型
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码场景
const (
	CaptchaSceneAdminLogin = "admin_login"
)

// 验证码提供方
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 默认币种
const DefaultCurrency = "INR"

// 队列与任务名称
const (
	QueueDefault      = "default"
	TaskOrderProgress = "order:progress"
)
