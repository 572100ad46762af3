package request

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	// Code is the short display number cashiers pick accounts by
	Code    *int    `json:"customerCode" binding:"omitempty,min=1"`
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin" binding:"omitempty,max=15"`
}

// SupplierRequest represents a supplier create or update request
type SupplierRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin" binding:"omitempty,max=15"`
}

// PartyFilterRequest represents customer and supplier list parameters
type PartyFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
