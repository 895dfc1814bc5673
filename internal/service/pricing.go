package service

import (
	"fmt"
	"strings"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"

	"github.com/shopspring/decimal"
)

// PricingPolicy 计价规则：满额免配送费，税费按小计计算，单个菜品数量不超过 MaxItemQuantity
type PricingPolicy struct {
	Currency              string
	FreeDeliveryThreshold decimal.Decimal
	FlatDeliveryFee       decimal.Decimal
	TaxRate               decimal.Decimal
	MaxItemQuantity       int
}

// PriceQuote 价格明细
type PriceQuote struct {
	Currency              string       `json:"currency"`
	Subtotal              models.Money `json:"subtotal"`
	DeliveryFee           models.Money `json:"delivery_fee"`
	Tax                   models.Money `json:"tax"`
	Total                 models.Money `json:"total"`
	FreeDeliveryThreshold models.Money `json:"free_delivery_threshold"`
	FreeDeliveryRemaining models.Money `json:"free_delivery_remaining"`
}

// DefaultPricingPolicy 默认计价规则
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		Currency:              constants.DefaultCurrency,
		FreeDeliveryThreshold: decimal.NewFromInt(299),
		FlatDeliveryFee:       decimal.NewFromInt(40),
		TaxRate:               decimal.RequireFromString("0.05"),
		MaxItemQuantity:       99,
	}
}

// NewPricingPolicy 从配置构建计价规则，空值回落到默认值
func NewPricingPolicy(cfg config.PricingConfig) (PricingPolicy, error) {
	policy := DefaultPricingPolicy()
	if currency := strings.ToUpper(strings.TrimSpace(cfg.Currency)); currency != "" {
		policy.Currency = currency
	}
	if cfg.MaxItemQuantity > 0 {
		policy.MaxItemQuantity = cfg.MaxItemQuantity
	}
	fields := []struct {
		name   string
		raw    string
		target *decimal.Decimal
	}{
		{"free_delivery_threshold", cfg.FreeDeliveryThreshold, &policy.FreeDeliveryThreshold},
		{"flat_delivery_fee", cfg.FlatDeliveryFee, &policy.FlatDeliveryFee},
		{"tax_rate", cfg.TaxRate, &policy.TaxRate},
	}
	for _, field := range fields {
		raw := strings.TrimSpace(field.raw)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return PricingPolicy{}, fmt.Errorf("invalid pricing.%s %q: %w", field.name, raw, err)
		}
		if value.IsNegative() {
			return PricingPolicy{}, fmt.Errorf("pricing.%s must not be negative", field.name)
		}
		*field.target = value
	}
	if policy.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return PricingPolicy{}, fmt.Errorf("pricing.tax_rate must be a fraction, got %s", policy.TaxRate)
	}
	return policy, nil
}

// round2 保留两位小数，正数方向为四舍五入
func round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// DeliveryFee 小计达到免配送门槛时为 0，否则为固定配送费
func (p PricingPolicy) DeliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return round2(p.FlatDeliveryFee)
}

// Tax 按小计计算税费
func (p PricingPolicy) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return round2(subtotal.Mul(p.TaxRate))
}

// Total 小计 + 配送费 + 税费
func (p PricingPolicy) Total(subtotal decimal.Decimal) decimal.Decimal {
	return round2(subtotal.Add(p.DeliveryFee(subtotal)).Add(p.Tax(subtotal)))
}

// Quote 生成价格明细
func (p PricingPolicy) Quote(subtotal decimal.Decimal) PriceQuote {
	remaining := p.FreeDeliveryThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return PriceQuote{
		Currency:              p.Currency,
		Subtotal:              models.NewMoneyFromDecimal(subtotal),
		DeliveryFee:           models.NewMoneyFromDecimal(p.DeliveryFee(subtotal)),
		Tax:                   models.NewMoneyFromDecimal(p.Tax(subtotal)),
		Total:                 models.NewMoneyFromDecimal(p.Total(subtotal)),
		FreeDeliveryThreshold: models.NewMoneyFromDecimal(p.FreeDeliveryThreshold),
		FreeDeliveryRemaining: models.NewMoneyFromDecimal(remaining),
	}
}
