package common

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GSTRateSlabs is the enumerated set of nominal GST percentages allowed on a tax rate.
var GSTRateSlabs = []float64{0, 0.25, 1.5, 3, 5, 6, 12, 18, 28}

// MaxCessRate is the highest cess percentage accepted on an item. Compensation
// cess on goods like tobacco runs well past the GST slabs, so the ceiling is
// far above 28%.
const MaxCessRate = 204.0

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[0-9A-Z]{1}[Z]{1}[0-9A-Z]{1}$`)

// ValidateUUID validates UUID path/query parameters.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, Invalidf(fieldName, "is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, Invalidf(fieldName, "is not a valid id")
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Invalidf(fieldName, "is required")
	}
	return nil
}

// ValidateOptionalString validates optional string fields
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return Invalidf(fieldName, "cannot exceed %d characters", maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

// ValidateGSTIN validates GSTIN format (15 characters, state code prefix).
func ValidateGSTIN(gstin, fieldName string) error {
	if strings.TrimSpace(gstin) == "" {
		return nil // GSTIN is optional
	}
	if len(gstin) != 15 {
		return Invalidf(fieldName, "must be exactly 15 characters")
	}
	if !gstinPattern.MatchString(gstin) {
		return Invalidf(fieldName, "has invalid GSTIN format")
	}
	return nil
}

// ValidateHSNCode validates HSN/SAC classification codes (2 to 8 digits).
func ValidateHSNCode(hsn, fieldName string) error {
	if strings.TrimSpace(hsn) == "" {
		return nil // HSN is optional
	}
	if len(hsn) < 2 || len(hsn) > 8 {
		return Invalidf(fieldName, "must be between 2 and 8 digits")
	}
	for _, r := range hsn {
		if r < '0' || r > '9' {
			return Invalidf(fieldName, "must contain only digits")
		}
	}
	return nil
}

// ValidateGSTRateSlab checks the nominal rate against the enumerated GST slabs.
func ValidateGSTRateSlab(rate float64, fieldName string) error {
	for _, slab := range GSTRateSlabs {
		if rate == slab {
			return nil
		}
	}
	return Invalidf(fieldName, "must be one of the GST slabs: 0, 0.25, 1.5, 3, 5, 6, 12, 18, 28")
}

// ValidateCessRate checks a cess percentage against the accepted ceiling.
func ValidateCessRate(rate float64, fieldName string) error {
	if rate < 0 {
		return Invalidf(fieldName, "cannot be negative")
	}
	if rate > MaxCessRate {
		return Invalidf(fieldName, "cannot exceed %.0f%%", MaxCessRate)
	}
	return nil
}

// ValidateNonNegativeAmount validates monetary fields that must be >= 0.
func ValidateNonNegativeAmount(value decimal.Decimal, fieldName string) error {
	if value.IsNegative() {
		return Invalidf(fieldName, "cannot be negative")
	}
	return nil
}

// ValidatePositiveAmount validates monetary fields that must be > 0.
func ValidatePositiveAmount(value decimal.Decimal, fieldName string) error {
	if !value.IsPositive() {
		return Invalidf(fieldName, "must be positive")
	}
	return nil
}

// ValidateRole validates organization member roles
func ValidateRole(role string) error {
	switch role {
	case "owner", "admin", "member":
		return nil
	}
	return Invalidf("role", "must be one of: owner, admin, member")
}

// ValidateInvoiceStatus validates invoice status values
func ValidateInvoiceStatus(status string) error {
	validStatuses := map[string]bool{
		"unpaid": true, "partially_paid": true, "paid": true,
		"overdue": true, "cancelled": true,
	}
	if !validStatuses[status] {
		return Invalidf("status", "must be one of: unpaid, partially_paid, paid, overdue, cancelled")
	}
	return nil
}

// ValidatePartyType validates party types
func ValidatePartyType(partyType string) error {
	if partyType != "customer" && partyType != "supplier" {
		return Invalidf("type", "must be either 'customer' or 'supplier'")
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 1000 {
		limit = 1000 // Maximum
	}
	if offset < 0 {
		offset = 0
	}
	if offset > 1000000 {
		return 0, 0, Invalidf("offset", "cannot exceed 1,000,000")
	}
	return limit, offset, nil
}

// ValidateDateRange validates date ranges to prevent abuse
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return Invalidf("end_date", "cannot be before start date")
	}
	duration := endDate.Sub(startDate)
	maxDuration := time.Hour * 24 * 365 * 10 // 10 years
	if duration > maxDuration {
		return Invalidf("", "date range cannot exceed 10 years")
	}
	return nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 safely handles float64 pointer operations
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0.0
	}
	return *f
}
