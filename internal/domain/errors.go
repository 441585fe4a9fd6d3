package domain

// Custom errors
var (
	ErrInvalidCriteria = NewDomainError("invalid filter criteria")
	ErrInvalidSortKey  = NewDomainError("invalid sort key")
	ErrInvalidSortDir  = NewDomainError("invalid sort direction")
	ErrInvalidPage     = NewDomainError("invalid page number")
	ErrInvalidView     = NewDomainError("invalid view")
	ErrSessionNotFound = NewDomainError("session not found")
)

// DomainError represents a domain-specific error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}
