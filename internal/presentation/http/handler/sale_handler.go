package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SaleHandler handles billing and sales ledger HTTP requests
type SaleHandler struct {
	checkoutService *service.CheckoutService
	saleService     *service.SaleService
	receiptService  *service.ReceiptService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(checkoutService *service.CheckoutService, saleService *service.SaleService, receiptService *service.ReceiptService) *SaleHandler {
	return &SaleHandler{
		checkoutService: checkoutService,
		saleService:     saleService,
		receiptService:  receiptService,
	}
}

func cartLines(in []request.CartLineRequest) []service.CartLineInput {
	out := make([]service.CartLineInput, 0, len(in))
	for _, l := range in {
		out = append(out, service.CartLineInput{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPercent: l.DiscountPercent,
			TaxPercent:      l.TaxPercent,
			Unit:            l.Unit,
		})
	}
	return out
}

// Quote prices a cart without touching stock or the ledger
// @Summary Price a cart
// @Tags billing
// @Accept json
// @Produce json
// @Param request body request.QuoteRequest true "Cart"
// @Success 200 {object} response.APIResponse
// @Router /billing/quote [post]
func (h *SaleHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), cartLines(req.Lines), req.ReceivedAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart priced", quote)
}

// NextInvoice previews the next invoice number without consuming it
func (h *SaleHandler) NextInvoice(c *gin.Context) {
	number, err := h.checkoutService.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next invoice number", gin.H{"invoiceNumber": number})
}

// Commit handles committing a sale
// @Summary Commit a sale
// @Description Decrements stock, allocates the invoice number and stores the sale as one unit
// @Tags sales
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client generated key"
// @Param request body request.CommitSaleRequest true "Cart and payment"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Commit(c *gin.Context) {
	var req request.CommitSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := h.checkoutService.CommitSale(c.Request.Context(), &service.CommitSaleInput{
		Lines:          cartLines(req.Lines),
		CustomerID:     req.CustomerID,
		PaymentMode:    enum.PaymentMode(strings.ToLower(strings.TrimSpace(req.PaymentMode))),
		ReceivedAmount: req.ReceivedAmount,
		Cashier:        GetUserName(c),
		BillDate:       req.BillDate,
		DueDate:        req.DueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale committed successfully", sale)
}

// List handles listing sales, most recent first
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     strings.TrimSpace(filter.Search),
		CustomerID: filter.CustomerID,
	}

	if filter.From != "" {
		from, err := time.ParseInLocation(dateLayout, filter.From, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid from date, use YYYY-MM-DD")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := time.ParseInLocation(dateLayout, filter.To, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid to date, use YYYY-MM-DD")
			return
		}
		if params.From != nil && to.Before(*params.From) {
			response.BadRequest(c, "'to' must not be before 'from'")
			return
		}
		// the ledger treats To as exclusive, so move it past the last day
		end := to.AddDate(0, 0, 1)
		params.To = &end
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByNumber looks a sale up by its invoice number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	sale, err := h.saleService.GetSaleByInvoiceNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Receipt returns the printable receipt view of a sale
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// InvoicePDF streams the A4 invoice
func (h *SaleHandler) InvoicePDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.receiptService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Print sends the receipt to the thermal printer
func (h *SaleHandler) Print(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", receipt)
}

// PrinterStatus reports whether a printer is configured and reachable
func (h *SaleHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus(c.Request.Context()))
}
