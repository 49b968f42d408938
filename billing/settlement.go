package billing

import (
	"fmt"
	"math"
)

// SettlementMethod is how an invoice (or the final move-out charge) gets
// paid: out of the held security deposit or in cash.
type SettlementMethod string

const (
	MethodDeposit SettlementMethod = "DEPOSIT"
	MethodCash    SettlementMethod = "CASH"
)

// Move-out session states. COMPUTED may be re-entered any number of times
// while the operator edits inputs; only CONFIRMED and beyond touch the
// deposit ledger.
const (
	StateCollectingReadings = "COLLECTING_READINGS"
	StateComputed           = "COMPUTED"
	StateConfirmed          = "CONFIRMED"
	StateContractClosed     = "CONTRACT_CLOSED"
)

// SettlementInput carries everything the move-out calculation needs:
// final-month utility charges (already run through ComputeCharge), ad-hoc
// charges and discount, the deposit fixed at contract start, and the sum of
// prior DEPOSIT-method settlements against this contract.
type SettlementInput struct {
	WaterCharge    float64
	ElectricCharge float64
	OtherCharges   float64
	Discount       float64
	DepositInitial float64
	DepositUsed    float64
	Method         SettlementMethod
}

// SettlementResult is the computed disposition of the final charge.
type SettlementResult struct {
	FinalInvoiceTotal float64 `json:"finalInvoiceTotal"`
	DepositRefund     float64 `json:"depositRefund"`
	AdditionalCashDue float64 `json:"additionalCashDue"`
}

// ComputeSettlement computes the departing tenant's final bill and splits
// it between deposit and cash. Under DEPOSIT the final charge is paid first
// out of whatever deposit remains and only the shortfall becomes a cash
// collection; under CASH the deposit is untouched and refunded in full.
// Pure and idempotent; it never writes the ledger.
func ComputeSettlement(in SettlementInput) SettlementResult {
	finalTotal := Round2(math.Max(0,
		sanitize(in.WaterCharge)+sanitize(in.ElectricCharge)+sanitize(in.OtherCharges)-sanitize(in.Discount)))

	baseRefund := math.Max(0, sanitize(in.DepositInitial)-sanitize(in.DepositUsed))

	result := SettlementResult{FinalInvoiceTotal: finalTotal}
	if in.Method == MethodDeposit {
		result.DepositRefund = Round2(math.Max(0, baseRefund-finalTotal))
		result.AdditionalCashDue = Round2(math.Max(0, finalTotal-baseRefund))
	} else {
		result.DepositRefund = Round2(baseRefund)
		result.AdditionalCashDue = finalTotal
	}
	return result
}

// CheckDepositCover enforces the precondition for settling an outstanding
// invoice from the deposit: the remaining deposit must cover the invoice in
// full. Partial application is never allowed, the caller must fall back to
// cash instead.
func CheckDepositCover(depositInitial, depositUsed, invoiceAmount float64) error {
	remaining := sanitize(depositInitial) - sanitize(depositUsed)
	amount := sanitize(invoiceAmount)
	if remaining < amount {
		return fmt.Errorf("%w: %.2f remaining, %.2f required", ErrInsufficientDeposit, remaining, amount)
	}
	return nil
}
