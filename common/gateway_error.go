package common

import "fmt"

// GatewayError wraps an upstream payment-provider failure. MoneyMoved
// tells the client (and the retry path) whether the charge went
// through before the failure, so a confused user never double-submits.
type GatewayError struct {
	Op         string
	MoneyMoved bool
	Err        error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed (money moved: %t): %v", e.Op, e.MoneyMoved, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NewGatewayError(op string, moneyMoved bool, err error) *GatewayError {
	return &GatewayError{Op: op, MoneyMoved: moneyMoved, Err: err}
}

// InvariantError marks a should-never-happen internal consistency
// failure, e.g. an ASSIGNED job with no payment row. It is logged
// loudly at the boundary and surfaced as a generic server error.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}

func Invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
