package billing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// FeeMethod selects how a utility charge is derived from metered usage
// (or occupant count, for the flat per-person method).
type FeeMethod string

const (
	MeterUsage          FeeMethod = "METER_USAGE"
	MeterUsageMinAmount FeeMethod = "METER_USAGE_MIN_AMOUNT"
	MeterUsageMinUnits  FeeMethod = "METER_USAGE_MIN_UNITS"
	MeterUsagePlusBase  FeeMethod = "METER_USAGE_PLUS_BASE"
	MeterUsageTiered    FeeMethod = "METER_USAGE_TIERED"
	FlatMonthly         FeeMethod = "FLAT_MONTHLY"
	FlatPerPerson       FeeMethod = "FLAT_PER_PERSON" // water only
)

// ChargeType controls how a single tier bills the units that fall inside it.
type ChargeType string

const (
	ChargePerUnit ChargeType = "PER_UNIT"
	ChargeFlat    ChargeType = "FLAT"
)

// TierRate is one segment of a tiered rate schedule. UptoUnit is the
// inclusive upper bound of the segment; nil marks the single open-ended
// final tier. FLAT tiers bill UnitPrice once when any usage lands in the
// segment, PER_UNIT tiers bill per unit consumed inside it.
type TierRate struct {
	UptoUnit   *float64   `json:"uptoUnit"`
	UnitPrice  float64    `json:"unitPrice"`
	ChargeType ChargeType `json:"chargeType"`
}

// PricingPolicy is the operator-configured billing policy for one utility.
// Only the fields relevant to the selected Method are consulted.
type PricingPolicy struct {
	Method           FeeMethod  `json:"method"`
	UnitPrice        float64    `json:"unitPrice"`
	MinAmount        float64    `json:"minAmount"`
	MinUnits         float64    `json:"minUnits"`
	FlatMonthlyFee   float64    `json:"flatMonthlyFee"`
	FlatPerPersonFee float64    `json:"flatPerPersonFee"`
	Tiers            []TierRate `json:"tieredRates"`
}

// InvoiceItem is an ad-hoc invoice line item.
type InvoiceItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

var (
	// ErrInvalidTierConfig rejects a malformed tiered-rate configuration at
	// the boundary where it is saved, before it ever reaches the engine.
	ErrInvalidTierConfig = errors.New("invalid tier configuration")

	// ErrInsufficientDeposit rejects a DEPOSIT-method settlement that the
	// remaining deposit cannot cover in full.
	ErrInsufficientDeposit = errors.New("insufficient deposit")

	// ErrOutstandingInvoices blocks a move-out while unpaid invoices exist.
	ErrOutstandingInvoices = errors.New("contract has outstanding invoices")
)

// NormalizeTiers returns the tier list in billing order: entries with a
// non-positive price are dropped, finite tiers are sorted by upper bound
// ascending, and the open-ended tier (first one, if several slipped past
// validation) goes last. The engine and the validators share this so both
// see the same schedule.
func NormalizeTiers(tiers []TierRate) []TierRate {
	finite := make([]TierRate, 0, len(tiers))
	var open *TierRate
	for i := range tiers {
		t := tiers[i]
		if !(t.UnitPrice > 0) {
			continue
		}
		if t.UptoUnit == nil {
			if open == nil {
				open = &t
			}
			continue
		}
		upto := *t.UptoUnit
		if math.IsNaN(upto) || math.IsInf(upto, 0) || upto <= 0 {
			continue
		}
		finite = append(finite, t)
	}
	sort.SliceStable(finite, func(i, j int) bool {
		return *finite[i].UptoUnit < *finite[j].UptoUnit
	})
	if open != nil {
		finite = append(finite, *open)
	}
	return finite
}

// ValidateTiers checks a tier configuration as entered by an operator.
// Unlike the engine, which silently skips unusable entries, this rejects
// them so a bad schedule never gets saved.
func ValidateTiers(tiers []TierRate) error {
	openSeen := false
	for i, t := range tiers {
		if t.ChargeType != ChargePerUnit && t.ChargeType != ChargeFlat {
			return fmt.Errorf("%w: tier %d has unknown charge type %q", ErrInvalidTierConfig, i+1, t.ChargeType)
		}
		if math.IsNaN(t.UnitPrice) || math.IsInf(t.UnitPrice, 0) || t.UnitPrice < 0 {
			return fmt.Errorf("%w: tier %d unit price must be a non-negative number", ErrInvalidTierConfig, i+1)
		}
		if t.UptoUnit == nil {
			if openSeen {
				return fmt.Errorf("%w: only one open-ended tier is allowed", ErrInvalidTierConfig)
			}
			openSeen = true
			continue
		}
		upto := *t.UptoUnit
		if math.IsNaN(upto) || math.IsInf(upto, 0) || upto <= 0 {
			return fmt.Errorf("%w: tier %d upper bound must be positive", ErrInvalidTierConfig, i+1)
		}
	}
	return nil
}
