package service

import (
	"errors"
	"strings"
	"time"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoyaltyTier 会员等级及其积分下限
type LoyaltyTier struct {
	Name      string `json:"name"`
	MinPoints int64  `json:"min_points"`
}

// loyaltyTiers 按下限升序排列
var loyaltyTiers = []LoyaltyTier{
	{Name: constants.LoyaltyTierBronze, MinPoints: 0},
	{Name: constants.LoyaltyTierSilver, MinPoints: 500},
	{Name: constants.LoyaltyTierGold, MinPoints: 1500},
	{Name: constants.LoyaltyTierPlatinum, MinPoints: 3000},
}

var tierBenefits = map[string][]string{
	constants.LoyaltyTierBronze: {
		"Earn 1 point for every ₹10 spent",
		"Birthday dessert on us",
	},
	constants.LoyaltyTierSilver: {
		"Earn 1 point for every ₹10 spent",
		"Birthday dessert on us",
		"5% off on weekday lunch orders",
		"Early access to seasonal menus",
	},
	constants.LoyaltyTierGold: {
		"Earn 1 point for every ₹10 spent",
		"Complimentary dessert with every order",
		"10% off on all orders above ₹500",
		"Priority kitchen queue",
	},
	constants.LoyaltyTierPlatinum: {
		"Earn 1 point for every ₹10 spent",
		"Complimentary dessert with every order",
		"15% off on all orders",
		"Priority kitchen queue",
		"Free chef's tasting menu every quarter",
	},
}

// LoyaltyTiers 返回等级表
func LoyaltyTiers() []LoyaltyTier {
	out := make([]LoyaltyTier, len(loyaltyTiers))
	copy(out, loyaltyTiers)
	return out
}

// TierFor 由积分推导等级，下限包含、上限不包含
func TierFor(points int64) string {
	tier := loyaltyTiers[0].Name
	for _, item := range loyaltyTiers {
		if points >= item.MinPoints {
			tier = item.Name
		}
	}
	return tier
}

// BenefitsFor 等级权益，未知等级返回空列表
func BenefitsFor(tier string) []string {
	benefits := tierBenefits[tier]
	out := make([]string, len(benefits))
	copy(out, benefits)
	return out
}

// nextTier 返回下一等级及所需积分，已是最高等级时返回空
func nextTier(points int64) (string, int64) {
	for _, item := range loyaltyTiers {
		if points < item.MinPoints {
			return item.Name, item.MinPoints - points
		}
	}
	return "", 0
}

// LoyaltyAccount 会员账户视图
type LoyaltyAccount struct {
	UserID           uint     `json:"user_id"`
	Points           int64    `json:"points"`
	Tier             string   `json:"tier"`
	Benefits         []string `json:"benefits"`
	NextTier         string   `json:"next_tier,omitempty"`
	PointsToNextTier int64    `json:"points_to_next_tier"`
}

// BuildLoyaltyAccount 根据积分构建账户视图
func BuildLoyaltyAccount(userID uint, points int64) *LoyaltyAccount {
	tier := TierFor(points)
	next, remaining := nextTier(points)
	return &LoyaltyAccount{
		UserID:           userID,
		Points:           points,
		Tier:             tier,
		Benefits:         BenefitsFor(tier),
		NextTier:         next,
		PointsToNextTier: remaining,
	}
}

// CreditPointsInput 积分入账输入
type CreditPointsInput struct {
	UserID     uint
	Points     int64
	OrderID    *uint
	Type       string
	Remark     string
	OperatorID uint
}

// LoyaltyService 会员积分服务
type LoyaltyService struct {
	userRepo         repository.UserRepository
	loyaltyRepo      repository.LoyaltyRepository
	currencyPerPoint decimal.Decimal
}

// NewLoyaltyService 创建会员积分服务
func NewLoyaltyService(userRepo repository.UserRepository, loyaltyRepo repository.LoyaltyRepository, cfg config.LoyaltyConfig) *LoyaltyService {
	perPoint := cfg.CurrencyPerPoint
	if perPoint <= 0 {
		perPoint = 10
	}
	return &LoyaltyService{
		userRepo:         userRepo,
		loyaltyRepo:      loyaltyRepo,
		currencyPerPoint: decimal.NewFromInt(int64(perPoint)),
	}
}

// PointsForOrder 订单可得积分，按金额向下取整
func (s *LoyaltyService) PointsForOrder(total decimal.Decimal) int64 {
	if !total.IsPositive() {
		return 0
	}
	return total.Div(s.currencyPerPoint).Floor().IntPart()
}

// GetAccount 获取会员账户
func (s *LoyaltyService) GetAccount(userID uint) (*LoyaltyAccount, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return BuildLoyaltyAccount(user.ID, user.LoyaltyPoints), nil
}

// CreditPoints 积分变动并写流水，关联订单时同一订单只入账一次
// 返回值 applied 为 false 表示该订单已入账过
func (s *LoyaltyService) CreditPoints(input CreditPointsInput) (*LoyaltyAccount, bool, error) {
	var (
		account *LoyaltyAccount
		applied bool
	)
	err := s.loyaltyRepo.Transaction(func(tx *gorm.DB) error {
		var err error
		account, applied, err = s.creditInTx(tx, input)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if applied {
		logTierChange(account, input.Points)
	}
	return account, applied, nil
}

func (s *LoyaltyService) creditInTx(tx *gorm.DB, input CreditPointsInput) (*LoyaltyAccount, bool, error) {
	if input.UserID == 0 {
		return nil, false, ErrUserNotFound
	}
	if input.Points == 0 {
		return nil, false, ErrInvalidPoints
	}
	txnType := strings.TrimSpace(input.Type)
	if txnType == "" {
		txnType = constants.LoyaltyTxnTypeAdminAdjust
	}
	loyaltyRepo := s.loyaltyRepo.WithTx(tx)
	userRepo := s.userRepo.WithTx(tx)

	user, err := userRepo.GetByIDForUpdate(input.UserID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}
	if input.OrderID != nil {
		exists, err := loyaltyRepo.ExistsForOrder(input.UserID, *input.OrderID)
		if err != nil {
			return nil, false, err
		}
		if exists {
			return BuildLoyaltyAccount(user.ID, user.LoyaltyPoints), false, nil
		}
	}

	balance := user.LoyaltyPoints + input.Points
	if balance < 0 {
		return nil, false, ErrPointsInsufficient
	}
	if err := userRepo.UpdatePoints(user.ID, balance); err != nil {
		return nil, false, err
	}
	txn := &models.LoyaltyTransaction{
		UserID:       user.ID,
		OrderID:      input.OrderID,
		Type:         txnType,
		Points:       input.Points,
		BalanceAfter: balance,
		Remark:       strings.TrimSpace(input.Remark),
		OperatorID:   input.OperatorID,
		CreatedAt:    time.Now(),
	}
	if err := loyaltyRepo.CreateTransaction(txn); err != nil {
		return nil, false, err
	}
	return BuildLoyaltyAccount(user.ID, balance), true, nil
}

func logTierChange(account *LoyaltyAccount, delta int64) {
	if account == nil {
		return
	}
	previous := TierFor(account.Points - delta)
	if previous != account.Tier {
		logger.Infow("loyalty_tier_changed",
			"user_id", account.UserID,
			"from_tier", previous,
			"to_tier", account.Tier,
			"points", account.Points,
		)
	}
}

// CreditOrderPoints 订单送达后为下单顾客入账，游客订单忽略
func (s *LoyaltyService) CreditOrderPoints(order *models.Order) (bool, error) {
	var (
		account *LoyaltyAccount
		applied bool
	)
	err := s.loyaltyRepo.Transaction(func(tx *gorm.DB) error {
		var err error
		account, applied, err = s.creditOrderInTx(tx, order)
		return err
	})
	if err != nil {
		return false, err
	}
	if applied {
		logTierChange(account, order.PointsEarned)
	}
	return applied, nil
}

// creditOrderInTx 在调用方事务内为订单入账，用户已删除时视为无需入账
func (s *LoyaltyService) creditOrderInTx(tx *gorm.DB, order *models.Order) (*LoyaltyAccount, bool, error) {
	if order == nil || order.UserID == 0 || order.PointsEarned <= 0 {
		return nil, false, nil
	}
	orderID := order.ID
	account, applied, err := s.creditInTx(tx, CreditPointsInput{
		UserID:  order.UserID,
		Points:  order.PointsEarned,
		OrderID: &orderID,
		Type:    constants.LoyaltyTxnTypeOrderEarn,
		Remark:  order.OrderNo,
	})
	if errors.Is(err, ErrUserNotFound) {
		return nil, false, nil
	}
	return account, applied, err
}

// AdjustPointsInput 后台手工调整积分
type AdjustPointsInput struct {
	UserID     uint   `json:"user_id" validate:"required"`
	Points     int64  `json:"points" validate:"required"`
	Remark     string `json:"remark" validate:"max=255"`
	OperatorID uint   `json:"-"`
}

// Adjust 后台调整积分，余额不可为负
func (s *LoyaltyService) Adjust(input AdjustPointsInput) (*LoyaltyAccount, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	account, _, err := s.CreditPoints(CreditPointsInput{
		UserID:     input.UserID,
		Points:     input.Points,
		Type:       constants.LoyaltyTxnTypeAdminAdjust,
		Remark:     input.Remark,
		OperatorID: input.OperatorID,
	})
	return account, err
}

// ListTransactions 积分流水
func (s *LoyaltyService) ListTransactions(filter repository.LoyaltyTransactionListFilter) ([]models.LoyaltyTransaction, int64, error) {
	return s.loyaltyRepo.ListTransactions(filter)
}

// CustomerLoyaltyView 后台顾客列表项，等级实时推导
type CustomerLoyaltyView struct {
	models.User
	Tier string `json:"tier"`
}

// ListCustomers 后台顾客列表
func (s *LoyaltyService) ListCustomers(filter repository.UserListFilter) ([]CustomerLoyaltyView, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]CustomerLoyaltyView, 0, len(users))
	for _, user := range users {
		result = append(result, CustomerLoyaltyView{User: user, Tier: TierFor(user.LoyaltyPoints)})
	}
	return result, total, nil
}
