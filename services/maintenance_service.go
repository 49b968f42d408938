package services

import (
	"property-backend/config"
	"property-backend/models"
)

type MaintenanceService struct{}

func (s MaintenanceService) Create(req models.MaintenanceRequest) (models.MaintenanceRequest, error) {
	err := config.DB.Create(&req).Error
	return req, err
}

func (s MaintenanceService) GetAll() ([]models.MaintenanceRequest, error) {
	var reqs []models.MaintenanceRequest
	err := config.DB.Preload("Room").Order("id DESC").Find(&reqs).Error
	return reqs, err
}

func (s MaintenanceService) GetByID(id int) (models.MaintenanceRequest, error) {
	var req models.MaintenanceRequest
	err := config.DB.Preload("Room").First(&req, id).Error
	return req, err
}

func (s MaintenanceService) Update(req models.MaintenanceRequest) error {
	return config.DB.Model(&models.MaintenanceRequest{}).Where("id = ?", req.ID).Updates(req).Error
}

func (s MaintenanceService) Delete(id int) error {
	return config.DB.Delete(&models.MaintenanceRequest{}, id).Error
}
