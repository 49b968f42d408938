package controllers

import (
	"errors"
	"net/http"

	"property-backend/config"
	"property-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type propertySettingsPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`

	AutoSendEnabled bool `json:"autoSendEnabled"`
	AutoSendDay     int  `json:"autoSendDay"`
	AutoSendHour    int  `json:"autoSendHour"`
}

func GetPropertySettings(c *gin.Context) {
	var setting models.PropertySetting
	if err := config.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"property": models.PropertySetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": setting})
}

func UpdatePropertySettings(c *gin.Context) {
	var payload propertySettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.AutoSendDay < 1 || payload.AutoSendDay > 28 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "autoSendDay must be between 1 and 28"})
		return
	}
	if payload.AutoSendHour < 0 || payload.AutoSendHour > 23 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "autoSendHour must be between 0 and 23"})
		return
	}

	var setting models.PropertySetting
	err := config.DB.First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setting.Name = payload.Name
	setting.Address = payload.Address
	setting.Phone = payload.Phone
	setting.Email = payload.Email
	setting.AutoSendEnabled = payload.AutoSendEnabled
	setting.AutoSendDay = payload.AutoSendDay
	setting.AutoSendHour = payload.AutoSendHour

	if setting.ID == 0 {
		err = config.DB.Create(&setting).Error
	} else {
		err = config.DB.Save(&setting).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": setting})
}
