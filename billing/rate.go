package billing

import "math"

const epsilon = 1e-9

// Round2 rounds a currency amount to 2 decimal places, half-up. The epsilon
// nudge keeps results that land a hair below a half-cent boundary after
// binary float math from truncating down.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round((x+epsilon)*100) / 100
}

// sanitize maps NaN, infinities and negatives to 0. The engine runs inside
// live-preview edit paths, so malformed input degrades instead of erroring.
func sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}

// ComputeCharge turns a usage quantity (occupant count for FLAT_PER_PERSON)
// into a charge amount under the policy's fee method. override is a per-room
// unit price that, when positive, supersedes the policy price for the
// unit-priced methods. Usage is clamped to >= 0, occupant counts to >= 1,
// and the result is rounded to 2 decimals exactly once. Never panics.
func ComputeCharge(usageOrOccupants float64, policy PricingPolicy, override float64) float64 {
	usage := sanitize(usageOrOccupants)
	override = sanitize(override)

	unitPrice := sanitize(policy.UnitPrice)
	effective := unitPrice
	if override > 0 {
		effective = override
	}
	minAmount := sanitize(policy.MinAmount)
	minUnits := sanitize(policy.MinUnits)

	switch policy.Method {
	case FlatMonthly:
		if override > 0 {
			return Round2(override)
		}
		return Round2(sanitize(policy.FlatMonthlyFee))

	case FlatPerPerson:
		occupants := usage
		if occupants < 1 {
			occupants = 1
		}
		return Round2(sanitize(policy.FlatPerPersonFee) * occupants)

	case MeterUsageMinAmount:
		return Round2(math.Max(usage*effective, minAmount))

	case MeterUsageMinUnits:
		// Cliff model: once past the allotment the whole usage bills at the
		// unit rate, the minimum is not a prepaid base.
		if usage <= minUnits {
			return Round2(minAmount)
		}
		return Round2(usage * effective)

	case MeterUsagePlusBase:
		if usage <= minUnits {
			return Round2(minAmount)
		}
		return Round2(minAmount + (usage-minUnits)*effective)

	case MeterUsageTiered:
		return Round2(tieredCharge(usage, policy.Tiers, unitPrice))

	default:
		// METER_USAGE and anything unrecognized: plain per-unit billing.
		return Round2(usage * effective)
	}
}

// tieredCharge walks the normalized schedule consuming usage tier by tier.
// An empty (or fully dropped) schedule falls back to flat per-unit billing
// at the policy price. Rounding happens once in ComputeCharge, not per tier.
func tieredCharge(usage float64, tiers []TierRate, fallbackUnitPrice float64) float64 {
	schedule := NormalizeTiers(tiers)
	if len(schedule) == 0 {
		return usage * fallbackUnitPrice
	}

	total := 0.0
	remaining := usage
	prevUpto := 0.0
	for _, tier := range schedule {
		if remaining <= 0 {
			break
		}
		var consumed float64
		if tier.UptoUnit == nil {
			consumed = remaining
		} else {
			capacity := *tier.UptoUnit - prevUpto
			prevUpto = *tier.UptoUnit
			if capacity <= 0 {
				continue
			}
			consumed = math.Min(remaining, capacity)
		}
		if tier.ChargeType == ChargeFlat {
			// Threshold fee: a single unit inside the tier triggers the
			// full flat price, nothing is pro-rated.
			total += tier.UnitPrice
		} else {
			total += consumed * tier.UnitPrice
		}
		remaining -= consumed
	}
	return total
}
