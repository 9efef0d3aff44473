package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden         = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrDuplicateBill     = NewDomainError("DUPLICATE_BILL", "A bill already exists for this tenant in the requested month")
	ErrNoActiveOccupants = NewDomainError("NO_ACTIVE_OCCUPANTS", "Room has no active occupants to split the bill across")
	ErrRentNotConfigured = NewDomainError("RENT_NOT_CONFIGURED", "Room has no rent amount configured")
	ErrTenantInactive    = NewDomainError("TENANT_INACTIVE", "Tenant is not active")
)
