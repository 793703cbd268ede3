package service

import "fmt"

// ValidationError covers malformed or missing input: empty item lists,
// non-positive quantities, malformed identifiers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthError means the caller carried no resolvable identity.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// ForbiddenError means the caller is authenticated but does not own the
// resource being acted on.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// InsufficientStockError reports how much stock was actually available,
// so the client can adjust the requested quantity.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %q. Available: %d, Requested: %d.",
		e.ProductName, e.Available, e.Requested)
}

// PriceMismatchError is returned when the client-supplied total diverges
// from the server-computed total by more than the accepted epsilon.
type PriceMismatchError struct {
	Calculated float64
	Provided   float64
}

func (e *PriceMismatchError) Error() string {
	return "Total price mismatch. Please refresh your cart and try again."
}
