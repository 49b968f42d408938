package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"property-backend/billing"
	"property-backend/models"
	"property-backend/utils"
)

// MoveOutService drives the move-out settlement session. Preview is a pure
// read (the COMPUTED state, repeatable on every input change); only
// SettleOutstanding and Confirm write the ledger and the receipt.
type MoveOutService struct {
	DB       *gorm.DB
	Policies *PolicyService
	Meters   *MeterService
}

func NewMoveOutService(db *gorm.DB, policies *PolicyService, meters *MeterService) *MoveOutService {
	return &MoveOutService{DB: db, Policies: policies, Meters: meters}
}

// MoveOutInput is what the operator supplies during the session: the final
// tenant-reported meter readings plus ad-hoc charges and the chosen
// settlement method.
type MoveOutInput struct {
	ContractID           uint                     `json:"contractId"`
	WaterFinalReading    float64                  `json:"waterFinalReading"`
	ElectricFinalReading float64                  `json:"electricFinalReading"`
	OtherCharges         float64                  `json:"otherCharges"`
	Discount             float64                  `json:"discount"`
	Method               billing.SettlementMethod `json:"method"`
}

// MoveOutPreview is the computed session snapshot shown to the operator.
type MoveOutPreview struct {
	State            string                   `json:"state"`
	CanMoveOut       bool                     `json:"canMoveOut"`
	OutstandingCount int                      `json:"outstandingCount"`
	WaterUsage       float64                  `json:"waterUsage"`
	ElectricUsage    float64                  `json:"electricUsage"`
	WaterCharge      float64                  `json:"waterCharge"`
	ElectricCharge   float64                  `json:"electricCharge"`
	DepositInitial   float64                  `json:"depositInitial"`
	DepositUsed      float64                  `json:"depositUsed"`
	Settlement       billing.SettlementResult `json:"settlement"`
}

func (s *MoveOutService) loadActiveContract(contractID uint) (models.Contract, error) {
	var contract models.Contract
	if err := s.DB.Preload("Room").Preload("Tenant").First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return contract, errors.New("contract_not_found")
		}
		return contract, fmt.Errorf("failed to find contract: %w", err)
	}
	if !strings.EqualFold(contract.Status, models.ContractActive) {
		return contract, errors.New("contract_not_active")
	}
	return contract, nil
}

// DepositUsed sums the prior DEPOSIT-method settlements for a contract.
func (s *MoveOutService) DepositUsed(contractID uint) (float64, error) {
	var used float64
	err := s.DB.Model(&models.SettlementEntry{}).
		Where("contract_id = ? AND method = ?", contractID, string(billing.MethodDeposit)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&used).Error
	return used, err
}

// OutstandingInvoices lists the invoices that still block this move-out.
func (s *MoveOutService) OutstandingInvoices(contractID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Where("contract_id = ? AND status NOT IN ?",
		contractID, []string{models.InvoicePaid, models.InvoiceCancelled}).
		Order("year, month").
		Find(&invoices).Error
	return invoices, err
}

func normalizeMethod(method billing.SettlementMethod) (billing.SettlementMethod, error) {
	switch method {
	case billing.MethodDeposit, billing.MethodCash:
		return method, nil
	case "":
		return billing.MethodCash, nil
	}
	return "", fmt.Errorf("unknown settlement method %q", method)
}

// Preview computes the full settlement picture without writing anything.
// Safe to call on every keystroke of the move-out dialog.
func (s *MoveOutService) Preview(in MoveOutInput) (MoveOutPreview, error) {
	method, err := normalizeMethod(in.Method)
	if err != nil {
		return MoveOutPreview{}, err
	}

	contract, err := s.loadActiveContract(in.ContractID)
	if err != nil {
		return MoveOutPreview{}, err
	}

	waterPolicy, electricPolicy, err := s.Policies.ForBilling()
	if err != nil {
		return MoveOutPreview{}, fmt.Errorf("failed to load pricing policies: %w", err)
	}

	// The last recorded reading is the baseline; the tenant-supplied final
	// reading closes the delta.
	last, err := s.Meters.Latest(contract.RoomID)
	var lastWater, lastElectric float64
	if err == nil {
		lastWater = last.WaterReading
		lastElectric = last.ElectricReading
	} else if err.Error() != "no_readings" {
		return MoveOutPreview{}, err
	}

	waterUsage := billing.UsageFromReadings(lastWater, in.WaterFinalReading)
	electricUsage := billing.UsageFromReadings(lastElectric, in.ElectricFinalReading)

	room := contract.Room
	waterCharge := billing.ComputeCharge(
		utilityQuantity(waterPolicy, waterUsage, contract.OccupantCount),
		waterPolicy, room.OverrideFor(models.UtilityWater))
	electricCharge := billing.ComputeCharge(
		utilityQuantity(electricPolicy, electricUsage, contract.OccupantCount),
		electricPolicy, room.OverrideFor(models.UtilityElectric))

	depositUsed, err := s.DepositUsed(in.ContractID)
	if err != nil {
		return MoveOutPreview{}, err
	}
	outstanding, err := s.OutstandingInvoices(in.ContractID)
	if err != nil {
		return MoveOutPreview{}, err
	}

	result := billing.ComputeSettlement(billing.SettlementInput{
		WaterCharge:    waterCharge,
		ElectricCharge: electricCharge,
		OtherCharges:   in.OtherCharges,
		Discount:       in.Discount,
		DepositInitial: contract.Deposit,
		DepositUsed:    depositUsed,
		Method:         method,
	})

	return MoveOutPreview{
		State:            billing.StateComputed,
		CanMoveOut:       len(outstanding) == 0,
		OutstandingCount: len(outstanding),
		WaterUsage:       waterUsage,
		ElectricUsage:    electricUsage,
		WaterCharge:      waterCharge,
		ElectricCharge:   electricCharge,
		DepositInitial:   contract.Deposit,
		DepositUsed:      depositUsed,
		Settlement:       result,
	}, nil
}

// SettleOutstanding applies one outstanding invoice against the deposit or
// cash during the move-out workflow. A DEPOSIT settlement that the
// remaining deposit cannot fully cover is rejected outright; there is no
// partial application.
func (s *MoveOutService) SettleOutstanding(invoiceID uint, method billing.SettlementMethod) (models.SettlementEntry, error) {
	method, err := normalizeMethod(method)
	if err != nil {
		return models.SettlementEntry{}, err
	}

	var entry models.SettlementEntry
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("invoice_not_found")
			}
			return err
		}
		if !invoice.Outstanding() {
			return errors.New("invoice_not_outstanding")
		}

		if method == billing.MethodDeposit {
			var contract models.Contract
			if err := tx.First(&contract, invoice.ContractID).Error; err != nil {
				return fmt.Errorf("failed to find contract: %w", err)
			}
			var used float64
			if err := tx.Model(&models.SettlementEntry{}).
				Where("contract_id = ? AND method = ?", invoice.ContractID, string(billing.MethodDeposit)).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&used).Error; err != nil {
				return err
			}
			if err := billing.CheckDepositCover(contract.Deposit, used, invoice.TotalAmount); err != nil {
				return err
			}
		}

		entry = models.SettlementEntry{
			ContractID: invoice.ContractID,
			InvoiceID:  invoice.ID,
			Amount:     invoice.TotalAmount,
			Method:     string(method),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		invoice.Status = models.InvoicePaid
		return tx.Save(&invoice).Error
	})
	return entry, err
}

// Confirm finalizes the move-out: recomputes the settlement from the
// submitted inputs, persists the receipt, closes the contract and frees
// the room, all in one transaction. Outstanding invoices are a hard stop.
func (s *MoveOutService) Confirm(in MoveOutInput) (models.MoveOutRecord, error) {
	method, err := normalizeMethod(in.Method)
	if err != nil {
		return models.MoveOutRecord{}, err
	}
	in.Method = method

	preview, err := s.Preview(in)
	if err != nil {
		return models.MoveOutRecord{}, err
	}
	if !preview.CanMoveOut {
		return models.MoveOutRecord{}, fmt.Errorf("%w: %d unpaid",
			billing.ErrOutstandingInvoices, preview.OutstandingCount)
	}

	contract, err := s.loadActiveContract(in.ContractID)
	if err != nil {
		return models.MoveOutRecord{}, err
	}

	rawCode, err := utils.GenerateReceiptCode(8)
	if err != nil {
		return models.MoveOutRecord{}, fmt.Errorf("failed to generate receipt number: %w", err)
	}
	receiptNo, err := utils.FormatReceiptCode(rawCode)
	if err != nil {
		return models.MoveOutRecord{}, fmt.Errorf("failed to format receipt number: %w", err)
	}

	now := time.Now()
	record := models.MoveOutRecord{
		ContractID:           contract.ID,
		RoomID:               contract.RoomID,
		ReceiptNo:            receiptNo,
		WaterFinalReading:    in.WaterFinalReading,
		ElectricFinalReading: in.ElectricFinalReading,
		WaterCharge:          preview.WaterCharge,
		ElectricCharge:       preview.ElectricCharge,
		OtherCharges:         in.OtherCharges,
		Discount:             in.Discount,
		SettlementMethod:     string(in.Method),
		FinalInvoiceTotal:    preview.Settlement.FinalInvoiceTotal,
		DepositRefund:        preview.Settlement.DepositRefund,
		AdditionalCashDue:    preview.Settlement.AdditionalCashDue,
		Status:               billing.StateConfirmed,
		ConfirmedAt:          &now,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		contract.Status = models.ContractClosed
		contract.ClosedAt = &now
		if err := tx.Save(&contract).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).
			Where("id = ?", contract.RoomID).
			Update("status", "VACANT").Error; err != nil {
			return err
		}
		record.Status = billing.StateContractClosed
		return tx.Model(&record).Update("status", record.Status).Error
	})
	if err != nil {
		return models.MoveOutRecord{}, err
	}
	return record, nil
}

// GetRecord loads a confirmed move-out receipt.
func (s *MoveOutService) GetRecord(id uint) (models.MoveOutRecord, error) {
	var record models.MoveOutRecord
	err := s.DB.Preload("Contract.Tenant").First(&record, id).Error
	return record, err
}
