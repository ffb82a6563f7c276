package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "atmgate/pkg/domain-errors"
)

// maxWholeRupees bounds the whole part so whole*100+paise stays within int64.
const maxWholeRupees = (math.MaxInt64 - 99) / 100

// Account is a provisioned ATM user. Balances are held in minor currency
// units (paise) so arithmetic stays exact; rupees appear only at the edges.
type Account struct {
	ID             string
	Name           string
	FingerprintRef []byte
	PINHash        string
	Balance        int64
}

// TransactionKind labels a completed money movement in the ledger.
type TransactionKind string

const (
	KindWithdrawal TransactionKind = "WITHDRAWAL"
	KindDeposit    TransactionKind = "DEPOSIT"
)

// AuthResult is returned on a successful two-factor authentication.
type AuthResult struct {
	Name    string
	Balance int64
	Token   string
}

// Rupees renders a minor-unit amount as a two-decimal rupee string.
func Rupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// ParseRupees converts a decimal wire amount ("1200", "1200.5", "1200.50")
// into minor units. More than two fractional digits is a client error: the
// currency has no sub-paise precision.
func ParseRupees(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, dErrors.New(dErrors.CodeBadRequest, "amount is required")
	}

	neg := false
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "amount precision is limited to two decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid amount")
	}
	if w > maxWholeRupees {
		return 0, dErrors.New(dErrors.CodeBadRequest, "amount is too large")
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid amount")
	}

	amount := w*100 + f
	if neg {
		amount = -amount
	}
	return amount, nil
}
