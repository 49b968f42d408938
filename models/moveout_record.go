package models

import (
	"time"

	"gorm.io/gorm"
)

// MoveOutRecord is the persisted receipt of a confirmed move-out
// settlement. Status follows the session states in the billing package:
// records are only written at CONFIRMED and advance to CONTRACT_CLOSED
// when the contract row is closed in the same transaction.
type MoveOutRecord struct {
	gorm.Model

	ContractID uint   `gorm:"index;column:contract_id" json:"contract_id"`
	RoomID     uint   `gorm:"index;column:room_id" json:"room_id"`
	ReceiptNo  string `gorm:"column:receipt_no;size:20;uniqueIndex" json:"receiptNo"`

	WaterFinalReading    float64 `gorm:"column:water_final_reading" json:"waterFinalReading"`
	ElectricFinalReading float64 `gorm:"column:electric_final_reading" json:"electricFinalReading"`

	WaterCharge    float64 `gorm:"column:water_charge" json:"waterCharge"`
	ElectricCharge float64 `gorm:"column:electric_charge" json:"electricCharge"`
	OtherCharges   float64 `gorm:"column:other_charges" json:"otherCharges"`
	Discount       float64 `gorm:"column:discount" json:"discount"`

	SettlementMethod  string  `gorm:"column:settlement_method;size:20" json:"settlementMethod"`
	FinalInvoiceTotal float64 `gorm:"column:final_invoice_total" json:"finalInvoiceTotal"`
	DepositRefund     float64 `gorm:"column:deposit_refund" json:"depositRefund"`
	AdditionalCashDue float64 `gorm:"column:additional_cash_due" json:"additionalCashDue"`

	Status      string     `gorm:"column:status;size:32" json:"status"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`

	Contract Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
}
