package billing

import "testing"

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name      string
		rent      float64
		water     float64
		electric  float64
		otherFees float64
		items     []InvoiceItem
		discount  float64
		want      float64
	}{
		{
			name: "all components summed",
			rent: 3000, water: 120, electric: 450, otherFees: 100,
			items: []InvoiceItem{
				{Description: "parking", Amount: 300},
				{Description: "internet", Amount: 200},
			},
			discount: 70,
			want:     4100.00,
		},
		{
			name: "no items no discount",
			rent: 3000, water: 120, electric: 450,
			want: 3570.00,
		},
		{
			name: "negative discount treated as zero",
			rent: 1000, discount: -50,
			want: 1000.00,
		},
		{
			name: "negative item amount treated as zero",
			rent: 1000,
			items: []InvoiceItem{
				{Description: "bogus", Amount: -999},
			},
			want: 1000.00,
		},
		{
			name: "discount larger than charges clamps to zero",
			rent: 500, discount: 800,
			want: 0,
		},
		{
			name: "rounding applied once at the end",
			rent: 10.004, water: 0.001,
			want: 10.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.rent, tt.water, tt.electric, tt.otherFees, tt.items, tt.discount)
			if got != tt.want {
				t.Errorf("ComputeTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Increasing the discount by d must decrease the total by d until the total
// hits the zero clamp.
func TestComputeTotalDiscountLinearity(t *testing.T) {
	base := ComputeTotal(3000, 120, 450, 0, nil, 0)
	for d := 0.0; d <= base; d += 50 {
		got := ComputeTotal(3000, 120, 450, 0, nil, d)
		if want := Round2(base - d); got != want {
			t.Fatalf("discount %v: total = %v, want %v", d, got, want)
		}
	}
	if got := ComputeTotal(3000, 120, 450, 0, nil, base+1000); got != 0 {
		t.Errorf("over-discounted total = %v, want 0", got)
	}
}

func TestItemsSum(t *testing.T) {
	items := []InvoiceItem{
		{Description: "parking", Amount: 300},
		{Description: "cleaning", Amount: 150.555},
		{Description: "refund typo", Amount: -20},
	}
	if got, want := Round2(itemsSum(items)), 450.56; got != want {
		t.Errorf("itemsSum() = %v, want %v", got, want)
	}
}
