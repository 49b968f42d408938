package models

import (
	"gorm.io/gorm"
)

type MaintenanceRequest struct {
	gorm.Model

	RoomID uint `gorm:"index;column:room_id" json:"room_id"`

	Title  string  `json:"title" gorm:"size:255"`
	Detail string  `json:"detail" gorm:"type:text"`
	Cost   float64 `json:"cost"`
	Status string  `json:"status" gorm:"size:32;default:OPEN"` // OPEN / IN_PROGRESS / DONE

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
