package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"property-backend/billing"
)

const (
	InvoiceUnpaid    = "UNPAID"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ContractID uint `gorm:"index;column:contract_id" json:"contract_id"`
	RoomID     uint `gorm:"index;column:room_id" json:"room_id"`

	Month int `gorm:"column:month" json:"month"`
	Year  int `gorm:"column:year" json:"year"`

	RentAmount     float64 `gorm:"column:rent_amount" json:"rentAmount"`
	WaterAmount    float64 `gorm:"column:water_amount" json:"waterAmount"`
	ElectricAmount float64 `gorm:"column:electric_amount" json:"electricAmount"`
	OtherFees      float64 `gorm:"column:other_fees" json:"otherFees"`
	Discount       float64 `gorm:"column:discount" json:"discount"`

	// Derived from the components above, never edited independently.
	TotalAmount float64 `gorm:"column:total_amount" json:"totalAmount"`

	Items datatypes.JSON `gorm:"column:items" json:"items,omitempty"`

	// Reading snapshots so the printed invoice stays reproducible even if
	// later readings are corrected.
	WaterPrevious    float64 `gorm:"column:water_previous" json:"waterPrevious"`
	WaterCurrent     float64 `gorm:"column:water_current" json:"waterCurrent"`
	ElectricPrevious float64 `gorm:"column:electric_previous" json:"electricPrevious"`
	ElectricCurrent  float64 `gorm:"column:electric_current" json:"electricCurrent"`

	Status string `gorm:"column:status;size:32;default:UNPAID" json:"status"`

	Contract Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// DecodedItems returns the ad-hoc line items stored on the invoice.
func (i Invoice) DecodedItems() []billing.InvoiceItem {
	if len(i.Items) == 0 {
		return nil
	}
	var items []billing.InvoiceItem
	if err := json.Unmarshal(i.Items, &items); err != nil {
		return nil
	}
	return items
}

// Outstanding reports whether the invoice still blocks a move-out.
func (i Invoice) Outstanding() bool {
	return i.Status != InvoicePaid && i.Status != InvoiceCancelled
}
