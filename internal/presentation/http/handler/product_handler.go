package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/application/service"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billmaster-api/pkg/pagination"
)

// maxImportSize caps uploaded catalog spreadsheets
const maxImportSize = 10 << 20

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing and searching the catalog
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:      strings.TrimSpace(filter.Search),
		Category:    strings.TrimSpace(filter.Category),
		StockAtMost: filter.LowStock,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:            req.Name,
		Code:            req.Code,
		Category:        req.Category,
		Unit:            req.Unit,
		Price:           req.Price,
		Stock:           req.Stock,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), &service.UpdateProductInput{
		ID:              id,
		Name:            req.Name,
		Code:            req.Code,
		Category:        req.Category,
		Unit:            req.Unit,
		Price:           req.Price,
		Stock:           req.Stock,
		DiscountPercent: req.DiscountPercent,
		TaxPercent:      req.TaxPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product. Past sales keep their own copy of the line.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// AdjustStock adds a signed delta to the product's stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock updated successfully", product)
}

// Import creates products from an uploaded .xlsx sheet
func (h *ProductHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A spreadsheet is required in the \"file\" field")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		response.BadRequest(c, "Only .xlsx files are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	result, err := h.productService.ImportProductsFromSheet(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Successful > 0 {
		status = http.StatusCreated
	}
	response.Success(c, status, "Import finished", result)
}

// Reset replaces the catalog with the starter catalog
func (h *ProductHandler) Reset(c *gin.Context) {
	products, err := h.productService.ResetCatalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog reset to defaults", products)
}
