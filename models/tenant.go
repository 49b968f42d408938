package models

import (
	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model

	FullName string `json:"fullName"`
	Phone    string `json:"phone" gorm:"size:50"`
	Email    string `json:"email" gorm:"size:150"`
	LineID   string `json:"lineId" gorm:"column:line_id;size:100"`

	IDType   string `json:"idType" gorm:"size:50"`
	IDNumber string `json:"idNumber" gorm:"size:100"`
	Address  string `json:"address" gorm:"type:text"`
	Note     string `json:"note" gorm:"type:text"`
}
