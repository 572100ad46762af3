package billing

import "fmt"

// InvoiceCounterName is the counter that numbers sales invoices.
const InvoiceCounterName = "sales"

// InvoiceCounterSeed is the first number handed out by a fresh counter.
const InvoiceCounterSeed int64 = 1

// FormatInvoiceNumber renders a counter value as INV-001, INV-002, ...
// Values above 999 keep all their digits.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%03d", n)
}
