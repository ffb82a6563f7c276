package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"atmgate/internal/account/models"
	"atmgate/internal/platform/middleware"
	dErrors "atmgate/pkg/domain-errors"
)

// maxFingerprintBytes bounds uploaded artifacts; reference prints are small
// bitmaps, so anything larger is rejected before decoding.
const maxFingerprintBytes = 5 << 20

// AccountService is what the transport layer needs from the ATM core.
type AccountService interface {
	Authenticate(ctx context.Context, id string, fingerprint []byte, pin string) (models.AuthResult, error)
	CheckBalance(ctx context.Context, id string) (int64, error)
	Withdraw(ctx context.Context, id string, amount int64) (int64, error)
	Deposit(ctx context.Context, id string, amount int64) (int64, error)
	Resume(ctx context.Context, id string) (models.AuthResult, error)
}

// Handler is the thin HTTP layer over the ATM service. It parses forms,
// delegates, and renders the response envelope; no business rules live here.
type Handler struct {
	logger   *slog.Logger
	accounts AccountService
	sessions middleware.SessionValidator
}

func NewHandler(accounts AccountService, sessions middleware.SessionValidator, logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		accounts: accounts,
		sessions: sessions,
	}
}

// handleAuthenticate runs the two-factor check. The fingerprint arrives as a
// multipart file upload; the core only ever sees its bytes, upload lifecycle
// stays here at the gateway.
func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFingerprintBytes); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form"))
		return
	}

	userID := r.FormValue("userId")
	pin := r.FormValue("pin")
	if userID == "" || pin == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "userId and pin are required"))
		return
	}

	file, _, err := r.FormFile("fingerprint")
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "No fingerprint uploaded"))
		return
	}
	defer file.Close()

	artifact, err := io.ReadAll(io.LimitReader(file, maxFingerprintBytes+1))
	if err != nil || len(artifact) > maxFingerprintBytes {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "fingerprint upload unreadable"))
		return
	}

	result, err := h.accounts.Authenticate(r.Context(), userID, artifact, pin)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Authentication Successful",
		Name:    result.Name,
		Balance: models.Rupees(result.Balance),
		Token:   result.Token,
	})
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	userID, amount, ok := h.transactionInput(w, r)
	if !ok {
		return
	}

	balance, err := h.accounts.Withdraw(r.Context(), userID, amount)
	if err != nil {
		h.writeTransactionError(w, r, userID, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Withdrawn Rs %s", models.Rupees(amount)),
		Balance: models.Rupees(balance),
	})
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	userID, amount, ok := h.transactionInput(w, r)
	if !ok {
		return
	}

	balance, err := h.accounts.Deposit(r.Context(), userID, amount)
	if err != nil {
		h.writeTransactionError(w, r, userID, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("Deposited Rs %s", models.Rupees(amount)),
		Balance: models.Rupees(balance),
	})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("userId")
	if userID == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "userId is required"))
		return
	}

	balance, err := h.accounts.CheckBalance(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Balance fetched successfully",
		Balance: models.Rupees(balance),
	})
}

// handleSession lets an authenticated card session re-fetch name and balance.
// RequireSession has already validated the bearer token.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	if accountID == "" {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired session"))
		return
	}

	result, err := h.accounts.Resume(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Session active",
		Name:    result.Name,
		Balance: models.Rupees(result.Balance),
	})
}

// transactionInput parses the shared withdraw/deposit form fields.
func (h *Handler) transactionInput(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	userID := r.FormValue("userId")
	if userID == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "userId is required"))
		return "", 0, false
	}

	amount, err := models.ParseRupees(r.FormValue("amount"))
	if err != nil {
		writeError(w, err)
		return "", 0, false
	}
	return userID, amount, true
}

// writeTransactionError renders a failed money movement. An insufficient-funds
// rejection still reports the current balance, matching the ATM screen.
func (h *Handler) writeTransactionError(w http.ResponseWriter, r *http.Request, userID string, err error) {
	if dErrors.Is(err, dErrors.CodeInsufficientFunds) {
		body := response{Success: false, Message: dErrors.MessageOf(err)}
		if balance, berr := h.accounts.CheckBalance(r.Context(), userID); berr == nil {
			body.Balance = models.Rupees(balance)
		}
		writeJSON(w, dErrors.HTTPStatus(err), body)
		return
	}
	writeError(w, err)
}
