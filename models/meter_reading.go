package models

import (
	"time"
)

// MeterReading is one monthly reading of both meters for a room. The
// billing path always works with the two chronologically latest rows.
type MeterReading struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	RoomID uint `gorm:"index;column:room_id" json:"room_id"`

	Month int `gorm:"column:month" json:"month"`
	Year  int `gorm:"column:year" json:"year"`

	WaterReading    float64 `gorm:"column:water_reading" json:"waterReading"`
	ElectricReading float64 `gorm:"column:electric_reading" json:"electricReading"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}
