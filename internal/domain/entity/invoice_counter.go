package entity

// InvoiceCounter is a named monotonic sequence
type InvoiceCounter struct {
	Name  string `gorm:"primaryKey;size:50" json:"name"`
	Value int64  `gorm:"not null" json:"value"`
}

// TableName returns the table name for the InvoiceCounter model
func (InvoiceCounter) TableName() string {
	return "invoice_counters"
}
