package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GeneratePurchaseNo generates a unique purchase number
func GeneratePurchaseNo() string {
	return "PUR-" + strings.ToUpper(uuid.New().String()[:8])
}
