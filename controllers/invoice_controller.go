package controllers

import (
	"net/http"
	"strconv"

	"property-backend/billing"
	"property-backend/services"
	"property-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	Service *services.InvoiceService
}

func NewInvoiceController(service *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Service: service}
}

type generateInvoicePayload struct {
	ContractID uint `json:"contractId"`
	Month      int  `json:"month"`
	Year       int  `json:"year"`
}

type invoiceItemPayload struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type discountPayload struct {
	Discount float64 `json:"discount"`
}

type otherFeesPayload struct {
	OtherFees float64 `json:"otherFees"`
}

func invoiceID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid invoice id")
		return 0, false
	}
	return uint(id), true
}

// invoiceError maps service failures to HTTP statuses. Business-rule
// rejections come back as 409/422, lookup misses as 404.
func invoiceError(c *gin.Context, err error) {
	switch err.Error() {
	case "invoice_not_found", "contract_not_found", "no_readings":
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case "invoice_exists", "invoice_not_editable", "invoice_not_outstanding",
		"contract_not_active", "paid invoice cannot be cancelled":
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	}
}

func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	if contractParam := c.Query("contractId"); contractParam != "" {
		contractID, err := strconv.Atoi(contractParam)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid contract id")
			return
		}
		invoices, err := ic.Service.ListByContract(uint(contractID))
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSONSuccess(c, http.StatusOK, invoices)
		return
	}

	invoices, err := ic.Service.List()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

func (ic *InvoiceController) GetInvoiceByID(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := ic.Service.GetByID(id)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "invoice not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) GenerateInvoice(c *gin.Context) {
	var payload generateInvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Month < 1 || payload.Month > 12 {
		utils.JSONError(c, http.StatusBadRequest, "invalid month")
		return
	}

	invoice, err := ic.Service.Generate(payload.ContractID, payload.Month, payload.Year)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

func (ic *InvoiceController) AddItem(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var payload invoiceItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := ic.Service.AddItem(id, billing.InvoiceItem{
		Description: payload.Description,
		Amount:      payload.Amount,
	})
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) RemoveItem(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid item index")
		return
	}

	invoice, err := ic.Service.RemoveItem(id, index)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) SetDiscount(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var payload discountPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := ic.Service.SetDiscount(id, payload.Discount)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) SetOtherFees(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var payload otherFeesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	invoice, err := ic.Service.SetOtherFees(id, payload.OtherFees)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) RecomputeUtilities(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := ic.Service.RecomputeUtilities(id)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) MarkPaid(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := ic.Service.MarkPaid(id)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) CancelInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	invoice, err := ic.Service.Cancel(id)
	if err != nil {
		invoiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}
