package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// PartyHandler handles customer and supplier HTTP requests
type PartyHandler struct {
	partyService *service.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService) *PartyHandler {
	return &PartyHandler{partyService: partyService}
}

func partyFilter(c *gin.Context) (*repository.PartyFilterParams, bool) {
	var filter request.PartyFilterRequest
	if !bindQuery(c, &filter) {
		return nil, false
	}
	return &repository.PartyFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     strings.TrimSpace(filter.Search),
	}, true
}

// ListCustomers handles listing customers
func (h *PartyHandler) ListCustomers(c *gin.Context) {
	params, ok := partyFilter(c)
	if !ok {
		return
	}

	result, err := h.partyService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customers retrieved successfully", result)
}

// GetCustomer handles getting a single customer
func (h *PartyHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.partyService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// CreateCustomer handles creating a customer
func (h *PartyHandler) CreateCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	code := 0
	if req.Code != nil {
		code = *req.Code
	}
	customer, err := h.partyService.CreateCustomer(c.Request.Context(), code, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// UpdateCustomer handles updating a customer
func (h *PartyHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.partyService.UpdateCustomer(c.Request.Context(), id, req.Code, customerInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// DeleteCustomer handles deleting a customer. Sales keep the account name they were billed to.
func (h *PartyHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// ListSuppliers handles listing suppliers
func (h *PartyHandler) ListSuppliers(c *gin.Context) {
	params, ok := partyFilter(c)
	if !ok {
		return
	}

	result, err := h.partyService.ListSuppliers(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Suppliers retrieved successfully", result)
}

// GetSupplier handles getting a single supplier
func (h *PartyHandler) GetSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.partyService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// CreateSupplier handles creating a supplier
func (h *PartyHandler) CreateSupplier(c *gin.Context) {
	var req request.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.partyService.CreateSupplier(c.Request.Context(), supplierInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// UpdateSupplier handles updating a supplier
func (h *PartyHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.partyService.UpdateSupplier(c.Request.Context(), id, supplierInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// DeleteSupplier handles deleting a supplier
func (h *PartyHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted successfully", nil)
}

func customerInput(req *request.CustomerRequest) *service.PartyInput {
	return &service.PartyInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}
}

func supplierInput(req *request.SupplierRequest) *service.PartyInput {
	return &service.PartyInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		GSTIN:   req.GSTIN,
	}
}
