package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"property-backend/billing"
	"property-backend/models"
)

// PolicyService owns the per-utility pricing configuration. Tier schedules
// are validated here, at the write boundary, so the engine never sees a
// malformed configuration it would have to silently skip over.
type PolicyService struct {
	DB *gorm.DB
}

func NewPolicyService(db *gorm.DB) *PolicyService {
	return &PolicyService{DB: db}
}

// PolicyInput is the operator-edited policy payload.
type PolicyInput struct {
	Method           string             `json:"method"`
	UnitPrice        float64            `json:"unitPrice"`
	MinAmount        float64            `json:"minAmount"`
	MinUnits         float64            `json:"minUnits"`
	FlatMonthlyFee   float64            `json:"flatMonthlyFee"`
	FlatPerPersonFee float64            `json:"flatPerPersonFee"`
	TieredRates      []billing.TierRate `json:"tieredRates"`
}

var validMethods = map[string]bool{
	string(billing.MeterUsage):          true,
	string(billing.MeterUsageMinAmount): true,
	string(billing.MeterUsageMinUnits):  true,
	string(billing.MeterUsagePlusBase):  true,
	string(billing.MeterUsageTiered):    true,
	string(billing.FlatMonthly):         true,
	string(billing.FlatPerPerson):       true,
}

func normalizeUtility(utility string) (string, error) {
	switch utility {
	case models.UtilityWater, models.UtilityElectric:
		return utility, nil
	}
	return "", fmt.Errorf("unknown utility type %q", utility)
}

func (s *PolicyService) Get(utility string) (models.PricingPolicy, error) {
	utility, err := normalizeUtility(utility)
	if err != nil {
		return models.PricingPolicy{}, err
	}
	var policy models.PricingPolicy
	err = s.DB.Where("utility_type = ?", utility).First(&policy).Error
	return policy, err
}

func (s *PolicyService) GetAll() ([]models.PricingPolicy, error) {
	var policies []models.PricingPolicy
	err := s.DB.Order("utility_type").Find(&policies).Error
	return policies, err
}

// Update upserts the policy for one utility. Rejects unknown fee methods,
// the per-person method on anything but water, and malformed tier lists.
func (s *PolicyService) Update(utility string, input PolicyInput) (models.PricingPolicy, error) {
	utility, err := normalizeUtility(utility)
	if err != nil {
		return models.PricingPolicy{}, err
	}
	if !validMethods[input.Method] {
		return models.PricingPolicy{}, fmt.Errorf("unknown fee method %q", input.Method)
	}
	if input.Method == string(billing.FlatPerPerson) && utility != models.UtilityWater {
		return models.PricingPolicy{}, errors.New("FLAT_PER_PERSON is only supported for water")
	}
	if err := billing.ValidateTiers(input.TieredRates); err != nil {
		return models.PricingPolicy{}, err
	}

	tiersJSON, err := json.Marshal(billing.NormalizeTiers(input.TieredRates))
	if err != nil {
		return models.PricingPolicy{}, fmt.Errorf("failed to encode tiers: %w", err)
	}

	var policy models.PricingPolicy
	err = s.DB.Where("utility_type = ?", utility).First(&policy).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PricingPolicy{}, err
	}

	policy.UtilityType = utility
	policy.Method = input.Method
	policy.UnitPrice = input.UnitPrice
	policy.MinAmount = input.MinAmount
	policy.MinUnits = input.MinUnits
	policy.FlatMonthlyFee = input.FlatMonthlyFee
	policy.FlatPerPersonFee = input.FlatPerPersonFee
	policy.TieredRates = tiersJSON

	if policy.ID == 0 {
		err = s.DB.Create(&policy).Error
	} else {
		err = s.DB.Save(&policy).Error
	}
	return policy, err
}

// ForBilling loads both utility policies as engine values. A missing row
// degrades to a zero policy (bills 0) rather than failing invoice
// generation outright.
func (s *PolicyService) ForBilling() (water, electric billing.PricingPolicy, err error) {
	policies, err := s.GetAll()
	if err != nil {
		return water, electric, err
	}
	for _, p := range policies {
		switch p.UtilityType {
		case models.UtilityWater:
			water = p.ToBilling()
		case models.UtilityElectric:
			electric = p.ToBilling()
		}
	}
	return water, electric, nil
}
