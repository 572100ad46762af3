package service

import (
	"fmt"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// MaxCount bounds every quantity so sums stay well inside int
const MaxCount = entity.MaxStock

var maxCount = decimal.NewFromInt(MaxCount)

// wholeCount converts a non-negative whole number up to MaxCount to int
func wholeCount(d decimal.Decimal) (int, bool) {
	if d.IsNegative() || !d.Equal(d.Truncate(0)) || d.GreaterThan(maxCount) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func lineField(index int, name string) string {
	return fmt.Sprintf("lines[%d].%s", index, name)
}

func productField(id uint) apperror.FieldError {
	return apperror.FieldError{Field: "productId", Message: fmt.Sprintf("product %d does not exist", id)}
}
