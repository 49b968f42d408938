package controllers

import (
	"net/http"
	"strconv"

	"property-backend/models"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type MeterController struct {
	Service *services.MeterService
}

func NewMeterController(service *services.MeterService) *MeterController {
	return &MeterController{Service: service}
}

func (mc *MeterController) RecordReading(c *gin.Context) {
	var reading models.MeterReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := mc.Service.Record(reading)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, saved)
}

func (mc *MeterController) GetReadingsByRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomId"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}
	readings, err := mc.Service.ListByRoom(uint(roomID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, readings)
}
