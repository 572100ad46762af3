package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewRequestID generates a request identifier
func NewRequestID() string {
	return uuid.New().String()
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PRD-" + strings.ToUpper(uuid.New().String()[:8])
}

// ParseID parses a positive numeric record id
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
