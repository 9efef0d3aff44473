package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// RoomSortFields contains allowed sort fields for rooms
var RoomSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"room_number": true,
	"rent_price":  true,
	"capacity":    true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"check_in_date": true,
	"status":        true,
	"room_id":       true,
}

// CurrentBillSortFields contains allowed sort fields for current bills
var CurrentBillSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"bill_date":   true,
	"bill_amount": true,
	"tenant_id":   true,
}
