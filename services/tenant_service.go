package services

import (
	"property-backend/config"
	"property-backend/models"
)

type TenantService struct{}

func (s TenantService) Create(tenant models.Tenant) (models.Tenant, error) {
	err := config.DB.Create(&tenant).Error
	return tenant, err
}

func (s TenantService) GetAll() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := config.DB.Order("full_name").Find(&tenants).Error
	return tenants, err
}

func (s TenantService) GetByID(id int) (models.Tenant, error) {
	var tenant models.Tenant
	err := config.DB.First(&tenant, id).Error
	return tenant, err
}

func (s TenantService) Update(tenant models.Tenant) error {
	return config.DB.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Updates(tenant).Error
}

func (s TenantService) Delete(id int) error {
	return config.DB.Delete(&models.Tenant{}, id).Error
}
