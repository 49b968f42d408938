package models

import "time"

type PropertySetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`

	// Auto-send invoice configuration. Only the shape lives here; the
	// scheduler that acts on it runs outside this service.
	AutoSendEnabled bool `gorm:"column:auto_send_enabled;default:false" json:"autoSendEnabled"`
	AutoSendDay     int  `gorm:"column:auto_send_day;default:1" json:"autoSendDay"`
	AutoSendHour    int  `gorm:"column:auto_send_hour;default:9" json:"autoSendHour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
