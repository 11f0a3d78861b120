package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateGSTIN(t *testing.T) {
	assert.NoError(t, ValidateGSTIN("27AAPFU0939F1ZV", "gstin"))
	assert.NoError(t, ValidateGSTIN("", "gstin"))

	assert.Error(t, ValidateGSTIN("27AAPFU0939F1Z", "gstin"))
	assert.Error(t, ValidateGSTIN("27aapfu0939f1zv", "gstin"))
	assert.Error(t, ValidateGSTIN("XXAAPFU0939F1ZV", "gstin"))
}

func TestValidateHSNCode(t *testing.T) {
	assert.NoError(t, ValidateHSNCode("30", "hsn_code"))
	assert.NoError(t, ValidateHSNCode("3004", "hsn_code"))
	assert.NoError(t, ValidateHSNCode("30049099", "hsn_code"))
	assert.NoError(t, ValidateHSNCode("", "hsn_code"))

	assert.Error(t, ValidateHSNCode("3", "hsn_code"))
	assert.Error(t, ValidateHSNCode("300490991", "hsn_code"))
	assert.Error(t, ValidateHSNCode("30A4", "hsn_code"))
}

func TestValidateGSTRateSlab(t *testing.T) {
	for _, slab := range GSTRateSlabs {
		assert.NoError(t, ValidateGSTRateSlab(slab, "rate"), "slab %v", slab)
	}

	assert.Error(t, ValidateGSTRateSlab(15, "rate"))
	assert.Error(t, ValidateGSTRateSlab(-5, "rate"))
	assert.Error(t, ValidateGSTRateSlab(17.999, "rate"))
}

func TestValidateCessRate(t *testing.T) {
	assert.NoError(t, ValidateCessRate(0, "cess_rate"))
	assert.NoError(t, ValidateCessRate(204, "cess_rate"))

	assert.Error(t, ValidateCessRate(-1, "cess_rate"))
	assert.Error(t, ValidateCessRate(204.01, "cess_rate"))
}

func TestValidatePaginationParams(t *testing.T) {
	limit, offset, err := ValidatePaginationParams(0, -5)
	assert.NoError(t, err)
	assert.Equal(t, 50, limit)
	assert.Equal(t, 0, offset)

	limit, _, err = ValidatePaginationParams(5000, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1000, limit)

	_, _, err = ValidatePaginationParams(10, 2000000)
	assert.Error(t, err)
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateDateRange(start, start.AddDate(0, 1, 0)))
	assert.Error(t, ValidateDateRange(start, start.AddDate(0, 0, -1)))
	assert.Error(t, ValidateDateRange(start, start.AddDate(11, 0, 0)))
}

func TestValidateRole(t *testing.T) {
	assert.NoError(t, ValidateRole("owner"))
	assert.NoError(t, ValidateRole("admin"))
	assert.NoError(t, ValidateRole("member"))
	assert.Error(t, ValidateRole("superuser"))
	assert.Error(t, ValidateRole(""))
}
