package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`
	Status     string `json:"status" gorm:"size:32;default:VACANT"` // VACANT / OCCUPIED / MAINTENANCE

	RentAmount  float64 `json:"rentAmount" gorm:"column:rent_amount"`
	Description string  `json:"description" gorm:"type:text"`

	// Per-room unit-price overrides. When set (> 0) they supersede the
	// policy's unit price for unit-priced fee methods and replace the fee
	// for FLAT_MONTHLY; FLAT_PER_PERSON keeps its configured fee. Nullable
	// so an absent override stays NULL instead of a misleading 0.
	WaterUnitPrice    *float64 `json:"waterUnitPrice,omitempty" gorm:"column:water_unit_price"`
	ElectricUnitPrice *float64 `json:"electricUnitPrice,omitempty" gorm:"column:electric_unit_price"`
}

// OverrideFor returns the room's unit-price override for a utility type,
// or 0 when none is set.
func (r Room) OverrideFor(utility string) float64 {
	switch utility {
	case UtilityWater:
		if r.WaterUnitPrice != nil {
			return *r.WaterUnitPrice
		}
	case UtilityElectric:
		if r.ElectricUnitPrice != nil {
			return *r.ElectricUnitPrice
		}
	}
	return 0
}
