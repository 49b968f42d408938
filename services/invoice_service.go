package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"property-backend/billing"
	"property-backend/models"
)

// InvoiceService composes pricing policies, meter readings and room
// overrides into invoices. Every mutation that touches an invoice
// component recomputes the total inside the same transaction, so a caller
// can never observe an updated utility amount with a stale total.
type InvoiceService struct {
	DB       *gorm.DB
	Policies *PolicyService
	Meters   *MeterService
}

func NewInvoiceService(db *gorm.DB, policies *PolicyService, meters *MeterService) *InvoiceService {
	return &InvoiceService{DB: db, Policies: policies, Meters: meters}
}

// utilityQuantity picks what feeds the rate engine for a policy: metered
// usage normally, the occupant count for the flat per-person method.
func utilityQuantity(policy billing.PricingPolicy, usage float64, occupants int) float64 {
	if policy.Method == billing.FlatPerPerson {
		return float64(occupants)
	}
	return usage
}

// Generate creates the invoice for a contract's billing month from the two
// latest readings, the current pricing policies and the room's overrides.
func (s *InvoiceService) Generate(contractID uint, month, year int) (models.Invoice, error) {
	var contract models.Contract
	if err := s.DB.Preload("Room").First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invoice{}, errors.New("contract_not_found")
		}
		return models.Invoice{}, fmt.Errorf("failed to find contract: %w", err)
	}
	if !strings.EqualFold(contract.Status, models.ContractActive) {
		return models.Invoice{}, errors.New("contract_not_active")
	}

	var dup int64
	s.DB.Model(&models.Invoice{}).
		Where("contract_id = ? AND month = ? AND year = ? AND status <> ?",
			contractID, month, year, models.InvoiceCancelled).
		Count(&dup)
	if dup > 0 {
		return models.Invoice{}, errors.New("invoice_exists")
	}

	waterPolicy, electricPolicy, err := s.Policies.ForBilling()
	if err != nil {
		return models.Invoice{}, fmt.Errorf("failed to load pricing policies: %w", err)
	}

	current, previous, err := s.Meters.LatestPair(contract.RoomID)
	if err != nil {
		return models.Invoice{}, err
	}
	var prevWater, prevElectric float64
	if previous != nil {
		prevWater = previous.WaterReading
		prevElectric = previous.ElectricReading
	}

	waterUsage := billing.UsageFromReadings(prevWater, current.WaterReading)
	electricUsage := billing.UsageFromReadings(prevElectric, current.ElectricReading)

	room := contract.Room
	waterCharge := billing.ComputeCharge(
		utilityQuantity(waterPolicy, waterUsage, contract.OccupantCount),
		waterPolicy, room.OverrideFor(models.UtilityWater))
	electricCharge := billing.ComputeCharge(
		utilityQuantity(electricPolicy, electricUsage, contract.OccupantCount),
		electricPolicy, room.OverrideFor(models.UtilityElectric))

	invoice := models.Invoice{
		ContractID:       contractID,
		RoomID:           contract.RoomID,
		Month:            month,
		Year:             year,
		RentAmount:       contract.RentAmount,
		WaterAmount:      waterCharge,
		ElectricAmount:   electricCharge,
		WaterPrevious:    prevWater,
		WaterCurrent:     current.WaterReading,
		ElectricPrevious: prevElectric,
		ElectricCurrent:  current.ElectricReading,
		Status:           models.InvoiceUnpaid,
	}
	invoice.TotalAmount = billing.ComputeTotal(
		invoice.RentAmount, invoice.WaterAmount, invoice.ElectricAmount,
		invoice.OtherFees, nil, invoice.Discount)

	if err := s.DB.Create(&invoice).Error; err != nil {
		return models.Invoice{}, err
	}
	return invoice, nil
}

func (s *InvoiceService) GetByID(id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Contract.Tenant").Preload("Room").First(&invoice, id).Error
	return invoice, err
}

func (s *InvoiceService) ListByContract(contractID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Where("contract_id = ?", contractID).
		Order("year DESC, month DESC").Find(&invoices).Error
	return invoices, err
}

func (s *InvoiceService) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Room").Order("year DESC, month DESC, id DESC").Find(&invoices).Error
	return invoices, err
}

// mutate loads an editable invoice, applies fn, rederives the total and
// saves, all in one transaction.
func (s *InvoiceService) mutate(invoiceID uint, fn func(inv *models.Invoice) error) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("invoice_not_found")
			}
			return err
		}
		if invoice.Status != models.InvoiceUnpaid {
			return errors.New("invoice_not_editable")
		}
		if err := fn(&invoice); err != nil {
			return err
		}
		invoice.TotalAmount = billing.ComputeTotal(
			invoice.RentAmount, invoice.WaterAmount, invoice.ElectricAmount,
			invoice.OtherFees, invoice.DecodedItems(), invoice.Discount)
		return tx.Save(&invoice).Error
	})
	return invoice, err
}

// AddItem appends an ad-hoc line item and rederives the total atomically.
func (s *InvoiceService) AddItem(invoiceID uint, item billing.InvoiceItem) (models.Invoice, error) {
	item.Description = strings.TrimSpace(item.Description)
	if item.Description == "" {
		return models.Invoice{}, errors.New("item description required")
	}
	if item.Amount < 0 {
		return models.Invoice{}, errors.New("item amount must be non-negative")
	}
	return s.mutate(invoiceID, func(inv *models.Invoice) error {
		items := append(inv.DecodedItems(), item)
		encoded, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode items: %w", err)
		}
		inv.Items = datatypes.JSON(encoded)
		return nil
	})
}

// RemoveItem drops the line item at index (0-based) and rederives the total.
func (s *InvoiceService) RemoveItem(invoiceID uint, index int) (models.Invoice, error) {
	return s.mutate(invoiceID, func(inv *models.Invoice) error {
		items := inv.DecodedItems()
		if index < 0 || index >= len(items) {
			return errors.New("item_not_found")
		}
		items = append(items[:index], items[index+1:]...)
		encoded, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode items: %w", err)
		}
		inv.Items = datatypes.JSON(encoded)
		return nil
	})
}

// SetDiscount replaces the invoice discount and rederives the total.
func (s *InvoiceService) SetDiscount(invoiceID uint, discount float64) (models.Invoice, error) {
	if discount < 0 {
		discount = 0
	}
	return s.mutate(invoiceID, func(inv *models.Invoice) error {
		inv.Discount = discount
		return nil
	})
}

// SetOtherFees replaces the lump other-fees amount and rederives the total.
func (s *InvoiceService) SetOtherFees(invoiceID uint, otherFees float64) (models.Invoice, error) {
	if otherFees < 0 {
		return models.Invoice{}, errors.New("other fees must be non-negative")
	}
	return s.mutate(invoiceID, func(inv *models.Invoice) error {
		inv.OtherFees = otherFees
		return nil
	})
}

// RecomputeUtilities re-runs the rate engine against the latest readings
// and policies, refreshing the reading snapshots and the total together.
func (s *InvoiceService) RecomputeUtilities(invoiceID uint) (models.Invoice, error) {
	waterPolicy, electricPolicy, err := s.Policies.ForBilling()
	if err != nil {
		return models.Invoice{}, fmt.Errorf("failed to load pricing policies: %w", err)
	}
	return s.mutate(invoiceID, func(inv *models.Invoice) error {
		var contract models.Contract
		if err := s.DB.Preload("Room").First(&contract, inv.ContractID).Error; err != nil {
			return fmt.Errorf("failed to find contract: %w", err)
		}
		current, previous, err := s.Meters.LatestPair(inv.RoomID)
		if err != nil {
			return err
		}
		var prevWater, prevElectric float64
		if previous != nil {
			prevWater = previous.WaterReading
			prevElectric = previous.ElectricReading
		}

		waterUsage := billing.UsageFromReadings(prevWater, current.WaterReading)
		electricUsage := billing.UsageFromReadings(prevElectric, current.ElectricReading)

		inv.WaterPrevious = prevWater
		inv.WaterCurrent = current.WaterReading
		inv.ElectricPrevious = prevElectric
		inv.ElectricCurrent = current.ElectricReading
		inv.WaterAmount = billing.ComputeCharge(
			utilityQuantity(waterPolicy, waterUsage, contract.OccupantCount),
			waterPolicy, contract.Room.OverrideFor(models.UtilityWater))
		inv.ElectricAmount = billing.ComputeCharge(
			utilityQuantity(electricPolicy, electricUsage, contract.OccupantCount),
			electricPolicy, contract.Room.OverrideFor(models.UtilityElectric))
		return nil
	})
}

// MarkPaid records a plain cash payment outside the move-out flow.
func (s *InvoiceService) MarkPaid(invoiceID uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return errors.New("invoice_not_found")
		}
		if !invoice.Outstanding() {
			return errors.New("invoice_not_outstanding")
		}
		entry := models.SettlementEntry{
			ContractID: invoice.ContractID,
			InvoiceID:  invoice.ID,
			Amount:     invoice.TotalAmount,
			Method:     string(billing.MethodCash),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		invoice.Status = models.InvoicePaid
		return tx.Save(&invoice).Error
	})
	return invoice, err
}

func (s *InvoiceService) Cancel(invoiceID uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return errors.New("invoice_not_found")
		}
		if invoice.Status == models.InvoicePaid {
			return errors.New("paid invoice cannot be cancelled")
		}
		invoice.Status = models.InvoiceCancelled
		return tx.Save(&invoice).Error
	})
	return invoice, err
}
