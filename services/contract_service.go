package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"property-backend/models"
)

type ContractService struct {
	DB *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{DB: db}
}

// Create opens a contract and marks the room occupied. A room can only
// carry one active contract at a time.
func (s *ContractService) Create(contract models.Contract) (models.Contract, error) {
	if contract.RoomID == 0 || contract.TenantID == 0 {
		return models.Contract{}, errors.New("room and tenant are required")
	}
	if contract.Deposit < 0 || contract.RentAmount < 0 {
		return models.Contract{}, errors.New("amounts must be non-negative")
	}
	if contract.OccupantCount < 1 {
		contract.OccupantCount = 1
	}
	contract.Status = models.ContractActive

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var active int64
		tx.Model(&models.Contract{}).
			Where("room_id = ? AND status = ?", contract.RoomID, models.ContractActive).
			Count(&active)
		if active > 0 {
			return errors.New("room_already_occupied")
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", contract.RoomID).
			Update("status", "OCCUPIED").Error
	})
	return contract, err
}

func (s *ContractService) GetAll() ([]models.Contract, error) {
	var contracts []models.Contract
	err := s.DB.Preload("Room").Preload("Tenant").Order("id DESC").Find(&contracts).Error
	return contracts, err
}

func (s *ContractService) GetByID(id uint) (models.Contract, error) {
	var contract models.Contract
	err := s.DB.Preload("Room").Preload("Tenant").First(&contract, id).Error
	return contract, err
}

// ActiveByRoom finds the active contract on a room, if any.
func (s *ContractService) ActiveByRoom(roomID uint) (models.Contract, error) {
	var contract models.Contract
	err := s.DB.Preload("Tenant").
		Where("room_id = ? AND status = ?", roomID, models.ContractActive).
		First(&contract).Error
	return contract, err
}

// Update edits contract terms. Closed contracts are immutable; closing
// goes through the move-out flow, never through an edit.
func (s *ContractService) Update(contract models.Contract) error {
	var existing models.Contract
	if err := s.DB.First(&existing, contract.ID).Error; err != nil {
		return errors.New("contract_not_found")
	}
	if strings.EqualFold(existing.Status, models.ContractClosed) {
		return errors.New("contract_closed")
	}
	return s.DB.Model(&models.Contract{}).
		Where("id = ?", contract.ID).
		Updates(map[string]interface{}{
			"rent_amount":    contract.RentAmount,
			"occupant_count": contract.OccupantCount,
			"start_date":     contract.StartDate,
			"end_date":       contract.EndDate,
		}).Error
}
