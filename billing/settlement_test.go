package billing

import (
	"errors"
	"testing"
)

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name string
		in   SettlementInput
		want SettlementResult
	}{
		{
			name: "deposit shortfall becomes cash due",
			in: SettlementInput{
				WaterCharge: 1500, ElectricCharge: 2000,
				DepositInitial: 3000, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 3500, DepositRefund: 0, AdditionalCashDue: 500},
		},
		{
			name: "deposit covers final charge with refund",
			in: SettlementInput{
				WaterCharge: 500, ElectricCharge: 700,
				DepositInitial: 3000, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 1200, DepositRefund: 1800, AdditionalCashDue: 0},
		},
		{
			name: "cash method leaves deposit untouched",
			in: SettlementInput{
				WaterCharge: 500, ElectricCharge: 700,
				DepositInitial: 3000, Method: MethodCash,
			},
			want: SettlementResult{FinalInvoiceTotal: 1200, DepositRefund: 3000, AdditionalCashDue: 1200},
		},
		{
			name: "prior deposit consumption reduces the refund base",
			in: SettlementInput{
				WaterCharge: 300, ElectricCharge: 200,
				DepositInitial: 3000, DepositUsed: 2600, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 500, DepositRefund: 0, AdditionalCashDue: 100},
		},
		{
			name: "discount reduces final charge",
			in: SettlementInput{
				WaterCharge: 400, ElectricCharge: 600, OtherCharges: 200, Discount: 300,
				DepositInitial: 1000, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 900, DepositRefund: 100, AdditionalCashDue: 0},
		},
		{
			name: "discount larger than charges clamps final to zero",
			in: SettlementInput{
				WaterCharge: 100, Discount: 500,
				DepositInitial: 2000, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 0, DepositRefund: 2000, AdditionalCashDue: 0},
		},
		{
			name: "deposit fully consumed refunds nothing",
			in: SettlementInput{
				WaterCharge: 500,
				DepositInitial: 3000, DepositUsed: 3000, Method: MethodDeposit,
			},
			want: SettlementResult{FinalInvoiceTotal: 500, DepositRefund: 0, AdditionalCashDue: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlement(tt.in)
			if got != tt.want {
				t.Errorf("ComputeSettlement() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The final charge must always be covered exactly once: the part taken from
// the deposit plus the cash collected equals the charge, and the calculator
// never shorts the tenant and bills them at the same time.
func TestSettlementAlwaysCoversFinalCharge(t *testing.T) {
	for _, method := range []SettlementMethod{MethodDeposit, MethodCash} {
		for charge := 0.0; charge <= 5000; charge += 250 {
			in := SettlementInput{
				WaterCharge:    charge,
				DepositInitial: 3000,
				DepositUsed:    500,
				Method:         method,
			}
			got := ComputeSettlement(in)

			baseRefund := in.DepositInitial - in.DepositUsed
			depositApplied := 0.0
			if method == MethodDeposit {
				depositApplied = baseRefund - got.DepositRefund
			}
			covered := Round2(depositApplied + got.AdditionalCashDue)
			if covered != got.FinalInvoiceTotal {
				t.Fatalf("%s charge %v: deposit applied %v + cash %v != final %v",
					method, charge, depositApplied, got.AdditionalCashDue, got.FinalInvoiceTotal)
			}
			if got.DepositRefund > 0 && got.AdditionalCashDue > 0 && method == MethodDeposit {
				t.Fatalf("%s charge %v: refunding %v while collecting %v",
					method, charge, got.DepositRefund, got.AdditionalCashDue)
			}
		}
	}
}

func TestComputeSettlementIdempotent(t *testing.T) {
	in := SettlementInput{
		WaterCharge: 321.55, ElectricCharge: 123.45, OtherCharges: 50, Discount: 25,
		DepositInitial: 3000, DepositUsed: 1000, Method: MethodDeposit,
	}
	if first, second := ComputeSettlement(in), ComputeSettlement(in); first != second {
		t.Errorf("repeated calls differ: %+v vs %+v", first, second)
	}
}

func TestCheckDepositCover(t *testing.T) {
	tests := []struct {
		name           string
		depositInitial float64
		depositUsed    float64
		invoiceAmount  float64
		wantErr        bool
	}{
		{"deposit covers invoice", 3000, 0, 2500, false},
		{"exact cover allowed", 3000, 500, 2500, false},
		{"insufficient remaining deposit", 3000, 2800, 500, true},
		{"fully consumed deposit", 3000, 3000, 1, true},
		{"zero invoice always covered", 3000, 3000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDepositCover(tt.depositInitial, tt.depositUsed, tt.invoiceAmount)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckDepositCover() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInsufficientDeposit) {
				t.Errorf("error %v is not ErrInsufficientDeposit", err)
			}
		})
	}
}
