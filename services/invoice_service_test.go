package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"property-backend/billing"
	"property-backend/models"
)

func newInvoiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.PricingPolicy{},
		&models.Room{},
		&models.Tenant{},
		&models.Contract{},
		&models.MeterReading{},
		&models.Invoice{},
		&models.SettlementEntry{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// seedBillingFixtures creates a room with an active contract, per-unit
// policies for both utilities and two months of readings.
func seedBillingFixtures(t *testing.T, db *gorm.DB) models.Contract {
	t.Helper()

	room := models.Room{RoomNumber: "101", RentAmount: 3000}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	tenant := models.Tenant{FullName: "Somchai J."}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	contract := models.Contract{
		RoomID:        room.ID,
		TenantID:      tenant.ID,
		RentAmount:    3000,
		Deposit:       3000,
		OccupantCount: 1,
		Status:        models.ContractActive,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	policies := []models.PricingPolicy{
		{UtilityType: models.UtilityWater, Method: string(billing.MeterUsage), UnitPrice: 5},
		{UtilityType: models.UtilityElectric, Method: string(billing.MeterUsage), UnitPrice: 7},
	}
	for i := range policies {
		if err := db.Create(&policies[i]).Error; err != nil {
			t.Fatalf("failed to create policy: %v", err)
		}
	}

	readings := []models.MeterReading{
		{RoomID: room.ID, Month: 1, Year: 2026, WaterReading: 100, ElectricReading: 200},
		{RoomID: room.ID, Month: 2, Year: 2026, WaterReading: 110, ElectricReading: 230},
	}
	for i := range readings {
		if err := db.Create(&readings[i]).Error; err != nil {
			t.Fatalf("failed to create reading: %v", err)
		}
	}
	return contract
}

// Every invoice mutation must rederive the stored total in the same write;
// an updated component with a stale total must never be observable.
func TestInvoiceMutationsKeepTotalDerived(t *testing.T) {
	db := newInvoiceTestDB(t)
	contract := seedBillingFixtures(t, db)

	svc := NewInvoiceService(db, NewPolicyService(db), NewMeterService(db))

	// water usage 10 × 5 = 50, electric usage 30 × 7 = 210
	invoice, err := svc.Generate(contract.ID, 2, 2026)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if invoice.TotalAmount != 3260.00 {
		t.Fatalf("generated total = %v, want 3260.00", invoice.TotalAmount)
	}

	assertStoredTotal := func(want float64) {
		t.Helper()
		var stored models.Invoice
		if err := db.First(&stored, invoice.ID).Error; err != nil {
			t.Fatalf("failed to reload invoice: %v", err)
		}
		if stored.TotalAmount != want {
			t.Fatalf("stored total = %v, want %v", stored.TotalAmount, want)
		}
		rederived := billing.ComputeTotal(
			stored.RentAmount, stored.WaterAmount, stored.ElectricAmount,
			stored.OtherFees, stored.DecodedItems(), stored.Discount)
		if stored.TotalAmount != rederived {
			t.Fatalf("stored total %v is stale, components rederive to %v",
				stored.TotalAmount, rederived)
		}
	}

	if _, err := svc.AddItem(invoice.ID, billing.InvoiceItem{Description: "parking", Amount: 300}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	assertStoredTotal(3560.00)

	if _, err := svc.SetDiscount(invoice.ID, 60); err != nil {
		t.Fatalf("SetDiscount() error = %v", err)
	}
	assertStoredTotal(3500.00)

	if _, err := svc.SetOtherFees(invoice.ID, 100); err != nil {
		t.Fatalf("SetOtherFees() error = %v", err)
	}
	assertStoredTotal(3600.00)

	if _, err := svc.RemoveItem(invoice.ID, 0); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	assertStoredTotal(3300.00)

	// A rejected mutation must leave both components and total untouched.
	if _, err := svc.RemoveItem(invoice.ID, 5); err == nil {
		t.Fatal("RemoveItem() with out-of-range index should fail")
	}
	assertStoredTotal(3300.00)
}

// RecomputeUtilities refreshes reading snapshots, utility amounts and the
// total together.
func TestRecomputeUtilitiesRefreshesTotal(t *testing.T) {
	db := newInvoiceTestDB(t)
	contract := seedBillingFixtures(t, db)

	meters := NewMeterService(db)
	svc := NewInvoiceService(db, NewPolicyService(db), meters)

	invoice, err := svc.Generate(contract.ID, 2, 2026)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := svc.SetOtherFees(invoice.ID, 100); err != nil {
		t.Fatalf("SetOtherFees() error = %v", err)
	}

	// New month: water usage 20 × 5 = 100, electric usage 20 × 7 = 140.
	if _, err := meters.Record(models.MeterReading{
		RoomID: contract.RoomID, Month: 3, Year: 2026,
		WaterReading: 130, ElectricReading: 250,
	}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	updated, err := svc.RecomputeUtilities(invoice.ID)
	if err != nil {
		t.Fatalf("RecomputeUtilities() error = %v", err)
	}
	if updated.WaterCurrent != 130 || updated.ElectricCurrent != 250 {
		t.Errorf("reading snapshots = %v/%v, want 130/250",
			updated.WaterCurrent, updated.ElectricCurrent)
	}
	if updated.WaterAmount != 100.00 || updated.ElectricAmount != 140.00 {
		t.Errorf("utility amounts = %v/%v, want 100.00/140.00",
			updated.WaterAmount, updated.ElectricAmount)
	}
	// 3000 rent + 100 water + 140 electric + 100 other fees
	if updated.TotalAmount != 3340.00 {
		t.Errorf("recomputed total = %v, want 3340.00", updated.TotalAmount)
	}

	var stored models.Invoice
	if err := db.First(&stored, invoice.ID).Error; err != nil {
		t.Fatalf("failed to reload invoice: %v", err)
	}
	if stored.TotalAmount != updated.TotalAmount {
		t.Errorf("stored total = %v, returned total = %v", stored.TotalAmount, updated.TotalAmount)
	}
}
