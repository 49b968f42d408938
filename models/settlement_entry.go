package models

import (
	"time"
)

// SettlementEntry is one application of money against an invoice, either
// from the tenant's held deposit or in cash. The sum of DEPOSIT entries per
// contract is the consumed portion of the deposit.
type SettlementEntry struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ContractID uint `gorm:"index;column:contract_id" json:"contract_id"`
	InvoiceID  uint `gorm:"index;column:invoice_id" json:"invoice_id"`

	Amount float64 `gorm:"column:amount" json:"amount"`
	Method string  `gorm:"column:method;size:20" json:"method"` // DEPOSIT / CASH

	CreatedAt time.Time `json:"createdAt"`

	Invoice Invoice `gorm:"foreignKey:InvoiceID;references:ID" json:"-"`
}
