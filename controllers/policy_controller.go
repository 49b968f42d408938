package controllers

import (
	"errors"
	"net/http"
	"strings"

	"property-backend/billing"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type PolicyController struct {
	Service *services.PolicyService
}

func NewPolicyController(service *services.PolicyService) *PolicyController {
	return &PolicyController{Service: service}
}

func (pc *PolicyController) GetPolicies(c *gin.Context) {
	policies, err := pc.Service.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, policies)
}

func (pc *PolicyController) GetPolicy(c *gin.Context) {
	utility := strings.ToUpper(c.Param("utility"))
	policy, err := pc.Service.Get(utility)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "policy not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, policy)
}

func (pc *PolicyController) UpdatePolicy(c *gin.Context) {
	utility := strings.ToUpper(c.Param("utility"))

	var input services.PolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	policy, err := pc.Service.Update(utility, input)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidTierConfig) {
			utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, policy)
}
