package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ContractActive = "ACTIVE"
	ContractClosed = "CLOSED"
)

type Contract struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID   uint `gorm:"index;column:room_id" json:"room_id"`
	TenantID uint `gorm:"index;column:tenant_id" json:"tenant_id"`

	StartDate *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`

	RentAmount    float64 `gorm:"column:rent_amount" json:"rentAmount"`
	Deposit       float64 `gorm:"column:deposit" json:"deposit"` // fixed at move-in
	OccupantCount int     `gorm:"column:occupant_count;default:1" json:"occupantCount"`

	Status   string     `gorm:"column:status;size:32;default:ACTIVE" json:"status"`
	ClosedAt *time.Time `gorm:"column:closed_at" json:"closedAt,omitempty"`

	Room   Room   `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
}
