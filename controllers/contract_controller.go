package controllers

import (
	"net/http"
	"strconv"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Service *services.ContractService
}

func NewContractController(service *services.ContractService) *ContractController {
	return &ContractController{Service: service}
}

func (cc *ContractController) GetContracts(c *gin.Context) {
	contracts, err := cc.Service.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contracts)
}

func (cc *ContractController) GetContractByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	contract, err := cc.Service.GetByID(uint(id))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "contract not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

func (cc *ContractController) CreateContract(c *gin.Context) {
	var contract models.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	created, err := cc.Service.Create(contract)
	if err != nil {
		if err.Error() == "room_already_occupied" {
			utils.JSONError(c, http.StatusConflict, "room already has an active contract")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (cc *ContractController) UpdateContract(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	var contract models.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	contract.ID = uint(id)
	if err := cc.Service.Update(contract); err != nil {
		switch err.Error() {
		case "contract_not_found":
			utils.JSONError(c, http.StatusNotFound, "contract not found")
		case "contract_closed":
			utils.JSONError(c, http.StatusConflict, "closed contract cannot be edited")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Contract updated"})
}
