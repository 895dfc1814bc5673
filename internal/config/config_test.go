package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaultsKeepsStorefrontConstants(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unmarshal defaults failed: %v", err)
	}
	if cfg.Pricing.FreeDeliveryThreshold != "299" || cfg.Pricing.FlatDeliveryFee != "40" || cfg.Pricing.TaxRate != "0.05" {
		t.Fatalf("unexpected pricing defaults: %+v", cfg.Pricing)
	}
	if cfg.Order.EstimatedDeliveryMinutes != 30 {
		t.Fatalf("unexpected estimated delivery minutes: %d", cfg.Order.EstimatedDeliveryMinutes)
	}
	if cfg.Order.PreparingAfterMinutes != 5 || cfg.Order.ReadyAfterMinutes != 15 || cfg.Order.OutForDeliveryMinutes != 20 {
		t.Fatalf("unexpected progress offsets: %+v", cfg.Order)
	}
	if cfg.Loyalty.CurrencyPerPoint != 10 {
		t.Fatalf("unexpected loyalty rate: %d", cfg.Loyalty.CurrencyPerPoint)
	}
	if cfg.Events.Enabled {
		t.Fatalf("events should be disabled by default")
	}
}
