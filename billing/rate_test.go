package billing

import (
	"math"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestComputeChargeMeterUsage(t *testing.T) {
	tests := []struct {
		name     string
		usage    float64
		policy   PricingPolicy
		override float64
		want     float64
	}{
		{
			name:   "plain per-unit",
			usage:  4,
			policy: PricingPolicy{Method: MeterUsage, UnitPrice: 7},
			want:   28.00,
		},
		{
			name:     "override supersedes policy price",
			usage:    4,
			policy:   PricingPolicy{Method: MeterUsage, UnitPrice: 7},
			override: 9,
			want:     36.00,
		},
		{
			name:     "zero override is ignored",
			usage:    4,
			policy:   PricingPolicy{Method: MeterUsage, UnitPrice: 7},
			override: 0,
			want:     28.00,
		},
		{
			name:   "negative usage clamps to zero",
			usage:  -3,
			policy: PricingPolicy{Method: MeterUsage, UnitPrice: 7},
			want:   0,
		},
		{
			name:   "NaN usage clamps to zero",
			usage:  math.NaN(),
			policy: PricingPolicy{Method: MeterUsage, UnitPrice: 7},
			want:   0,
		},
		{
			name:   "negative unit price treated as zero",
			usage:  4,
			policy: PricingPolicy{Method: MeterUsage, UnitPrice: -7},
			want:   0,
		},
		{
			name:   "fractional result rounds to 2 decimals",
			usage:  3,
			policy: PricingPolicy{Method: MeterUsage, UnitPrice: 3.335},
			want:   10.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCharge(tt.usage, tt.policy, tt.override)
			if got != tt.want {
				t.Errorf("ComputeCharge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeChargeFlatMethods(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		policy   PricingPolicy
		override float64
		want     float64
	}{
		{
			name:   "flat monthly ignores usage",
			input:  999,
			policy: PricingPolicy{Method: FlatMonthly, FlatMonthlyFee: 150, UnitPrice: 7},
			want:   150.00,
		},
		{
			name:     "flat monthly honors positive override",
			input:    10,
			policy:   PricingPolicy{Method: FlatMonthly, FlatMonthlyFee: 150},
			override: 120,
			want:     120.00,
		},
		{
			name:   "per person multiplies occupants",
			input:  3,
			policy: PricingPolicy{Method: FlatPerPerson, FlatPerPersonFee: 60},
			want:   180.00,
		},
		{
			name:   "per person clamps occupants to one",
			input:  0,
			policy: PricingPolicy{Method: FlatPerPerson, FlatPerPersonFee: 60},
			want:   60.00,
		},
		{
			name:   "per person clamps negative occupants to one",
			input:  -5,
			policy: PricingPolicy{Method: FlatPerPerson, FlatPerPersonFee: 60},
			want:   60.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCharge(tt.input, tt.policy, tt.override)
			if got != tt.want {
				t.Errorf("ComputeCharge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeChargeMinimumMethods(t *testing.T) {
	tests := []struct {
		name   string
		usage  float64
		policy PricingPolicy
		want   float64
	}{
		{
			name:   "min amount floor applies",
			usage:  2,
			policy: PricingPolicy{Method: MeterUsageMinAmount, UnitPrice: 7, MinAmount: 50},
			want:   50.00,
		},
		{
			name:   "min amount exceeded bills usage",
			usage:  10,
			policy: PricingPolicy{Method: MeterUsageMinAmount, UnitPrice: 7, MinAmount: 50},
			want:   70.00,
		},
		{
			name:   "min units below threshold bills minimum",
			usage:  4,
			policy: PricingPolicy{Method: MeterUsageMinUnits, UnitPrice: 7, MinUnits: 5, MinAmount: 100},
			want:   100.00,
		},
		{
			// Cliff: above the allotment the whole usage bills per unit,
			// so the charge can drop below the minimum.
			name:   "min units above threshold bills full usage",
			usage:  6,
			policy: PricingPolicy{Method: MeterUsageMinUnits, UnitPrice: 7, MinUnits: 5, MinAmount: 100},
			want:   42.00,
		},
		{
			name:   "min units at threshold bills minimum",
			usage:  5,
			policy: PricingPolicy{Method: MeterUsageMinUnits, UnitPrice: 7, MinUnits: 5, MinAmount: 100},
			want:   100.00,
		},
		{
			name:   "plus base below threshold bills base",
			usage:  4,
			policy: PricingPolicy{Method: MeterUsagePlusBase, UnitPrice: 7, MinUnits: 5, MinAmount: 100},
			want:   100.00,
		},
		{
			name:   "plus base bills base plus excess only",
			usage:  8,
			policy: PricingPolicy{Method: MeterUsagePlusBase, UnitPrice: 7, MinUnits: 5, MinAmount: 100},
			want:   121.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCharge(tt.usage, tt.policy, 0)
			if got != tt.want {
				t.Errorf("ComputeCharge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeChargeMinAmountNeverBelowFloor(t *testing.T) {
	policy := PricingPolicy{Method: MeterUsageMinAmount, UnitPrice: 3.5, MinAmount: 40}
	for usage := 0.0; usage <= 30; usage += 0.5 {
		got := ComputeCharge(usage, policy, 0)
		if got < policy.MinAmount {
			t.Fatalf("usage %v billed %v, below floor %v", usage, got, policy.MinAmount)
		}
	}
}

func TestComputeChargeTiered(t *testing.T) {
	tests := []struct {
		name   string
		usage  float64
		policy PricingPolicy
		want   float64
	}{
		{
			name:  "two per-unit tiers",
			usage: 8,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
			}},
			want: 55.00, // 5×5 + 3×10
		},
		{
			name:  "usage inside first tier only",
			usage: 3,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
			}},
			want: 15.00,
		},
		{
			name:  "flat tier charges once even for one unit",
			usage: 6,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: ptr(10), UnitPrice: 30, ChargeType: ChargeFlat},
			}},
			want: 55.00, // 5×5 + 30
		},
		{
			name:  "flat tier not charged when untouched",
			usage: 5,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: ptr(10), UnitPrice: 30, ChargeType: ChargeFlat},
			}},
			want: 25.00,
		},
		{
			name:  "unsorted tiers are sorted before walking",
			usage: 8,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
			}},
			want: 55.00,
		},
		{
			name:  "zero-price tiers dropped",
			usage: 8,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(3), UnitPrice: 0, ChargeType: ChargePerUnit},
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
			}},
			want: 55.00,
		},
		{
			name:   "empty tier list falls back to unit price",
			usage:  8,
			policy: PricingPolicy{Method: MeterUsageTiered, UnitPrice: 4},
			want:   32.00,
		},
		{
			name:  "usage beyond all closed tiers stops at schedule end",
			usage: 100,
			policy: PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: ptr(10), UnitPrice: 10, ChargeType: ChargePerUnit},
			}},
			want: 75.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCharge(tt.usage, tt.policy, 0)
			if got != tt.want {
				t.Errorf("ComputeCharge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTieredChargeMonotonic(t *testing.T) {
	policy := PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
		{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
		{UptoUnit: ptr(10), UnitPrice: 30, ChargeType: ChargeFlat},
		{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
	}}
	prev := -1.0
	for usage := 0.0; usage <= 25; usage += 0.25 {
		got := ComputeCharge(usage, policy, 0)
		if got < prev {
			t.Fatalf("charge decreased: usage %v billed %v after %v", usage, got, prev)
		}
		prev = got
	}
}

func TestComputeChargeIdempotent(t *testing.T) {
	policy := PricingPolicy{Method: MeterUsageTiered, Tiers: []TierRate{
		{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
		{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
	}}
	first := ComputeCharge(8, policy, 0)
	second := ComputeCharge(8, policy, 0)
	if first != second {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []TierRate
		wantErr bool
	}{
		{
			name: "valid schedule",
			tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
			},
		},
		{
			name: "two open-ended tiers rejected",
			tiers: []TierRate{
				{UptoUnit: nil, UnitPrice: 5, ChargeType: ChargePerUnit},
				{UptoUnit: nil, UnitPrice: 10, ChargeType: ChargePerUnit},
			},
			wantErr: true,
		},
		{
			name: "unknown charge type rejected",
			tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: 5, ChargeType: "PRORATED"},
			},
			wantErr: true,
		},
		{
			name: "non-positive upper bound rejected",
			tiers: []TierRate{
				{UptoUnit: ptr(0), UnitPrice: 5, ChargeType: ChargePerUnit},
			},
			wantErr: true,
		},
		{
			name: "negative price rejected",
			tiers: []TierRate{
				{UptoUnit: ptr(5), UnitPrice: -5, ChargeType: ChargeFlat},
			},
			wantErr: true,
		},
		{
			name:  "empty schedule is fine",
			tiers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTiers() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUsageFromReadings(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		want     float64
	}{
		{"normal delta", 120, 134, 14},
		{"no movement", 120, 120, 0},
		{"meter rollback clamps to zero", 134, 120, 0},
		{"NaN reading clamps to zero", math.NaN(), 134, 134},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsageFromReadings(tt.previous, tt.current); got != tt.want {
				t.Errorf("UsageFromReadings() = %v, want %v", got, tt.want)
			}
		})
	}
}
