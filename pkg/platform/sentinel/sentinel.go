package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: account does not exist in store
// - ErrConflict: account ID already provisioned
// - ErrInsufficientFunds: debit would drive the balance negative
// - ErrBalanceOverflow: credit would exceed the representable balance
// - ErrUnavailable: backing resource (ledger file) temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBalanceOverflow   = errors.New("balance overflow")
	ErrUnavailable       = errors.New("unavailable")
)
