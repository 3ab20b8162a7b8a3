package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrInvalidAccountId    = errors.New("invalid account id")
	ErrInvalidAmountFormat = errors.New("invalid amount format")

	// authorization errors, always fatal to the triggering request
	ErrCallerMismatch = errors.New("callback must originate from the collection contract")
	ErrSignerMismatch = errors.New("owner must be the transaction signer")
	ErrSelfBid        = errors.New("cannot bid on your own sale")
	ErrNotSaleOwner   = errors.New("only the sale owner may remove it")

	// validation errors
	ErrZeroDuration        = errors.New("sale period must be greater than zero")
	ErrZeroAmount          = errors.New("amount must be greater than zero")
	ErrBidBelowReserve     = errors.New("amount must be greater than reserve price")
	ErrUnsupportedPayToken = errors.New("pay token not supported by this market")
	ErrSaleWithoutPayments = errors.New("sale does not accept payments")
	ErrSaleEnded           = errors.New("sale has ended")

	// ErrStorageAdmissionRace indicates the post-insert storage re-check
	// failed: another listing for the same owner was admitted in between.
	// Distinct from ordinary validation so callers can tell a race from a
	// rejected request.
	ErrStorageAdmissionRace = errors.New("storage admission re-check failed")
)

// InsufficientStorageError names the shortfall so the caller can tell how
// much more storage to deposit.
type InsufficientStorageError struct {
	Paid     decimal.Decimal
	Required decimal.Decimal
	Rate     decimal.Decimal
}

func (e *InsufficientStorageError) Error() string {
	sales := int64(0)
	if e.Rate.IsPositive() {
		sales = e.Required.Div(e.Rate).IntPart()
	}
	return fmt.Sprintf("insufficient storage paid: %s, for %d sales at %s rate of per sale", e.Paid, sales, e.Rate)
}

// IsInsufficientStorage reports whether err is an InsufficientStorageError.
func IsInsufficientStorage(err error) bool {
	var e *InsufficientStorageError
	return errors.As(err, &e)
}
