package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"property-backend/models"
)

type MeterService struct {
	DB *gorm.DB
}

func NewMeterService(db *gorm.DB) *MeterService {
	return &MeterService{DB: db}
}

// Record saves the monthly readings for a room. A second submission for
// the same room and month overwrites the first; meter readers correct
// typos this way.
func (s *MeterService) Record(reading models.MeterReading) (models.MeterReading, error) {
	if reading.RoomID == 0 {
		return models.MeterReading{}, errors.New("room_required")
	}
	if reading.Month < 1 || reading.Month > 12 {
		return models.MeterReading{}, fmt.Errorf("invalid month %d", reading.Month)
	}
	if reading.Year < 2000 {
		return models.MeterReading{}, fmt.Errorf("invalid year %d", reading.Year)
	}
	if reading.WaterReading < 0 || reading.ElectricReading < 0 {
		return models.MeterReading{}, errors.New("readings must be non-negative")
	}

	var existing models.MeterReading
	err := s.DB.Where("room_id = ? AND month = ? AND year = ?",
		reading.RoomID, reading.Month, reading.Year).First(&existing).Error
	if err == nil {
		existing.WaterReading = reading.WaterReading
		existing.ElectricReading = reading.ElectricReading
		if err := s.DB.Save(&existing).Error; err != nil {
			return models.MeterReading{}, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MeterReading{}, err
	}

	if err := s.DB.Create(&reading).Error; err != nil {
		return models.MeterReading{}, err
	}
	return reading, nil
}

func (s *MeterService) ListByRoom(roomID uint) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := s.DB.Where("room_id = ?", roomID).
		Order("year DESC, month DESC, created_at DESC").
		Find(&readings).Error
	return readings, err
}

// LatestPair returns the two chronologically latest readings for a room:
// current first, then previous. previous is nil when only one reading
// exists, in which case billing treats the prior reading as zero.
func (s *MeterService) LatestPair(roomID uint) (current, previous *models.MeterReading, err error) {
	var readings []models.MeterReading
	err = s.DB.Where("room_id = ?", roomID).
		Order("year DESC, month DESC, created_at DESC").
		Limit(2).
		Find(&readings).Error
	if err != nil {
		return nil, nil, err
	}
	if len(readings) == 0 {
		return nil, nil, errors.New("no_readings")
	}
	current = &readings[0]
	if len(readings) > 1 {
		previous = &readings[1]
	}
	return current, previous, nil
}

// Latest returns the single most recent reading for a room, used as the
// baseline for move-out final readings.
func (s *MeterService) Latest(roomID uint) (*models.MeterReading, error) {
	current, _, err := s.LatestPair(roomID)
	return current, err
}
