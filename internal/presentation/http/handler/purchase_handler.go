package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// PurchaseHandler handles supplier purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases, most recent first
func (h *PurchaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Purchases retrieved successfully", result)
}

// Get handles getting a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Record stores a supplier purchase and adds the received quantities to stock
func (h *PurchaseHandler) Record(c *gin.Context) {
	var req request.RecordPurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.PurchaseItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.PurchaseItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			CostPrice: it.CostPrice,
		})
	}

	purchase, err := h.purchaseService.RecordPurchase(c.Request.Context(), &service.RecordPurchaseInput{
		SupplierID:        req.SupplierID,
		SupplierInvoiceNo: req.SupplierInvoiceNo,
		Date:              req.Date,
		Items:             items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", purchase)
}
