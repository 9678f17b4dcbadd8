package trade

import (
	appcart "github.com/atelier/storefront/internal/application/cart"
	"github.com/atelier/storefront/internal/domain/shared"
)

// CartOutOfDateError rejects a checkout whose cart no longer matches inventory.
// It carries the reconciliation the client must apply before retrying.
type CartOutOfDateError struct {
	Reconciliation appcart.VerifyResponse
}

func (e *CartOutOfDateError) Error() string {
	return shared.ErrCartOutOfDate.Message
}

// Unwrap exposes the CART_OUT_OF_DATE domain error
func (e *CartOutOfDateError) Unwrap() error {
	return shared.ErrCartOutOfDate
}

// Details returns the reconciliation result for the error response
func (e *CartOutOfDateError) Details() any {
	return e.Reconciliation
}
