package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"property-backend/billing"
)

const (
	UtilityWater    = "WATER"
	UtilityElectric = "ELECTRIC"
)

// PricingPolicy is the stored per-utility billing configuration. One row
// per utility type; edited rarely, read on every invoice generation.
type PricingPolicy struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UtilityType string `gorm:"column:utility_type;size:20;uniqueIndex" json:"utilityType"`
	Method      string `gorm:"column:method;size:40" json:"method"`

	UnitPrice        float64 `gorm:"column:unit_price" json:"unitPrice"`
	MinAmount        float64 `gorm:"column:min_amount" json:"minAmount"`
	MinUnits         float64 `gorm:"column:min_units" json:"minUnits"`
	FlatMonthlyFee   float64 `gorm:"column:flat_monthly_fee" json:"flatMonthlyFee"`
	FlatPerPersonFee float64 `gorm:"column:flat_per_person_fee" json:"flatPerPersonFee"`

	TieredRates datatypes.JSON `gorm:"column:tiered_rates" json:"tieredRates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBilling converts the stored row into the engine's policy value.
// A tier column that fails to decode is treated as empty; the engine then
// falls back to flat per-unit billing, which matches how a blank
// configuration behaves.
func (p PricingPolicy) ToBilling() billing.PricingPolicy {
	policy := billing.PricingPolicy{
		Method:           billing.FeeMethod(p.Method),
		UnitPrice:        p.UnitPrice,
		MinAmount:        p.MinAmount,
		MinUnits:         p.MinUnits,
		FlatMonthlyFee:   p.FlatMonthlyFee,
		FlatPerPersonFee: p.FlatPerPersonFee,
	}
	if len(p.TieredRates) > 0 {
		var tiers []billing.TierRate
		if err := json.Unmarshal(p.TieredRates, &tiers); err == nil {
			policy.Tiers = tiers
		}
	}
	return policy
}
