package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"property-backend/billing"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type MoveOutController struct {
	Service *services.MoveOutService
}

func NewMoveOutController(service *services.MoveOutService) *MoveOutController {
	return &MoveOutController{Service: service}
}

// Preview recomputes the settlement numbers for the dialog. Pure read,
// callable as often as the operator edits inputs.
func (mo *MoveOutController) Preview(c *gin.Context) {
	var input services.MoveOutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := mo.Service.Preview(input)
	if err != nil {
		switch err.Error() {
		case "contract_not_found":
			utils.JSONError(c, http.StatusNotFound, "contract not found")
		case "contract_not_active":
			utils.JSONError(c, http.StatusConflict, "contract is not active")
		default:
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, preview)
}

type settleInvoicePayload struct {
	InvoiceID uint   `json:"invoiceId"`
	Method    string `json:"method"`
}

// SettleInvoice applies an outstanding invoice against deposit or cash.
// Insufficient deposit is a hard rejection, not a partial application.
func (mo *MoveOutController) SettleInvoice(c *gin.Context) {
	var payload settleInvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := mo.Service.SettleOutstanding(payload.InvoiceID, billing.SettlementMethod(payload.Method))
	if err != nil {
		if errors.Is(err, billing.ErrInsufficientDeposit) {
			utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		switch err.Error() {
		case "invoice_not_found":
			utils.JSONError(c, http.StatusNotFound, "invoice not found")
		case "invoice_not_outstanding":
			utils.JSONError(c, http.StatusConflict, "invoice is already settled")
		default:
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entry)
}

// Confirm finalizes the move-out and closes the contract. Outstanding
// invoices block the action entirely.
func (mo *MoveOutController) Confirm(c *gin.Context) {
	var input services.MoveOutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	record, err := mo.Service.Confirm(input)
	if err != nil {
		if errors.Is(err, billing.ErrOutstandingInvoices) {
			utils.JSONError(c, http.StatusConflict, err.Error())
			return
		}
		switch err.Error() {
		case "contract_not_found":
			utils.JSONError(c, http.StatusNotFound, "contract not found")
		case "contract_not_active":
			utils.JSONError(c, http.StatusConflict, "contract is not active")
		default:
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, record)
}

// GetOutstanding lists the invoices still blocking a contract's move-out.
func (mo *MoveOutController) GetOutstanding(c *gin.Context) {
	contractID, err := strconv.Atoi(c.Param("contractId"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid contract id")
		return
	}

	invoices, err := mo.Service.OutstandingInvoices(uint(contractID))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"canMoveOut":  len(invoices) == 0,
		"outstanding": invoices,
	})
}

func (mo *MoveOutController) GetRecord(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := mo.Service.GetRecord(uint(id))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "record not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, record)
}
