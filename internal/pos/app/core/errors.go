package core

import "errors"

var (
	ErrParseCmd = errors.New("cannot parse arguments")
	ErrHelp     = errors.New("")

	ErrDBConn = errors.New("db connection failure")
	ErrMBConn = errors.New("message broker connection failure")
	ErrMBCh   = errors.New("message broker channel failure")

	// Business error kinds. Every state-changing operation fails with exactly
	// one of these, surfaced after the surrounding transaction rolled back.
	ErrNoOpenShift      = errors.New("register has no open shift")
	ErrOrderNotOpen     = errors.New("order is not open")
	ErrInsufficientCash = errors.New("cash received is below total due")
	ErrUnknownEntity    = errors.New("referenced entity does not exist")
	ErrTxFailed         = errors.New("transaction failed")

	ErrFieldIsEmpty = errors.New("field is empty")
)
