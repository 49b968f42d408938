package controllers

import (
	"net/http"
	"strconv"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type TenantController struct {
	Service services.TenantService
}

func NewTenantController(service services.TenantService) *TenantController {
	return &TenantController{Service: service}
}

func (tc *TenantController) GetTenants(c *gin.Context) {
	tenants, err := tc.Service.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenants)
}

func (tc *TenantController) GetTenantByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	tenant, err := tc.Service.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "tenant not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenant)
}

func (tc *TenantController) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	created, err := tc.Service.Create(tenant)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (tc *TenantController) UpdateTenant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	tenant.ID = uint(id)
	if err := tc.Service.Update(tenant); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenant)
}

func (tc *TenantController) DeleteTenant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	if err := tc.Service.Delete(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Tenant deleted"})
}
