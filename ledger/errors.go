// ledger/errors.go
package ledger

import "errors"

// Declined trades and rejected input are signalled with these sentinels so
// callers can branch with errors.Is. None of them leave partial state behind.
var (
	ErrBadQuantity          = errors.New("quantity must be a positive integer")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrUnknownSymbol        = errors.New("unknown symbol")
)
