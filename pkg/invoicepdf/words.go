package invoicepdf

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords spells an amount the way Indian invoices do, grouping by
// thousand, lakh and crore: 1,50,250.75 is
// "One Lakh Fifty Thousand Two Hundred Fifty Rupees and Seventy Five Paise Only".
// The sign is ignored.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(spell(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(spell(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func spell(n int64) string {
	switch {
	case n >= 10000000:
		return join(spell(n/10000000)+" Crore", n%10000000)
	case n >= 100000:
		return join(underThousand(n/100000)+" Lakh", n%100000)
	case n >= 1000:
		return join(underThousand(n/1000)+" Thousand", n%1000)
	default:
		return underThousand(n)
	}
}

func join(head string, rest int64) string {
	if rest == 0 {
		return head
	}
	return head + " " + spell(rest)
}

func underThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + ones[n%10]
	default:
		if n%100 == 0 {
			return ones[n/100] + " Hundred"
		}
		return ones[n/100] + " Hundred " + underThousand(n%100)
	}
}
