package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"atmgate/internal/account/models"
	"atmgate/internal/biometric"
	"atmgate/internal/ledger"
	"atmgate/internal/platform/metrics"
	dErrors "atmgate/pkg/domain-errors"
	"atmgate/pkg/platform/sentinel"
)

// CredentialStore is what the service needs from the account store.
type CredentialStore interface {
	Get(ctx context.Context, id string) (models.Account, error)
	VerifyPIN(ctx context.Context, id, pin string) (bool, error)
	Debit(ctx context.Context, id string, amount int64) (int64, error)
	Credit(ctx context.Context, id string, amount int64) (int64, error)
}

// Service orchestrates the two flows exposed to callers: authenticate and
// transact. Every call is independently evaluated; there is no persistent
// session state beyond the optional bearer token.
type Service struct {
	store   CredentialStore
	matcher biometric.Matcher
	ledger  ledger.Appender
	tokens  *TokenIssuer
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	// mu guards locks; each account gets its own mutex so the
	// check -> mutate -> ledger-append sequence is atomic per account
	// without serializing unrelated accounts behind ledger I/O.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(
	store CredentialStore,
	matcher biometric.Matcher,
	appender ledger.Appender,
	tokens *TokenIssuer,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		store:   store,
		matcher: matcher,
		ledger:  appender,
		tokens:  tokens,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *Service) lockAccount(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// errAuthFailed is the single failure surfaced for any authentication miss.
// An unknown account, a fingerprint mismatch and a wrong PIN are
// indistinguishable to the caller, so neither accounts nor factors can be
// enumerated.
func errAuthFailed() error {
	return dErrors.New(dErrors.CodeAuthenticationFailed, "Authentication Failed")
}

// Authenticate runs the two-factor check: exact fingerprint match AND PIN
// match. Both factors are always evaluated; success requires both.
func (s *Service) Authenticate(ctx context.Context, id string, fingerprint []byte, pin string) (models.AuthResult, error) {
	account, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordAuthAttempt(false)
			return models.AuthResult{}, errAuthFailed()
		}
		return models.AuthResult{}, dErrors.New(dErrors.CodeInternal, "authentication unavailable")
	}

	fingerprintOK := s.matcher.Matches(account.FingerprintRef, fingerprint)

	pinOK, err := s.store.VerifyPIN(ctx, id, pin)
	if err != nil {
		return models.AuthResult{}, dErrors.New(dErrors.CodeInternal, "authentication unavailable")
	}

	if !fingerprintOK || !pinOK {
		s.metrics.RecordAuthAttempt(false)
		s.logger.InfoContext(ctx, "authentication failed", "account_id", id)
		return models.AuthResult{}, errAuthFailed()
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		return models.AuthResult{}, dErrors.New(dErrors.CodeInternal, "authentication unavailable")
	}

	s.metrics.RecordAuthAttempt(true)
	s.logger.InfoContext(ctx, "authentication succeeded", "account_id", id)
	return models.AuthResult{Name: account.Name, Balance: account.Balance, Token: token}, nil
}

// Resume returns the display name and balance for an account that already
// holds a valid session token. No factors are re-evaluated here; the token is
// the proof of a completed authentication.
func (s *Service) Resume(ctx context.Context, id string) (models.AuthResult, error) {
	account, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.AuthResult{}, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return models.AuthResult{}, dErrors.New(dErrors.CodeInternal, "account unavailable")
	}
	return models.AuthResult{Name: account.Name, Balance: account.Balance}, nil
}

// CheckBalance returns the current balance in minor units.
func (s *Service) CheckBalance(ctx context.Context, id string) (int64, error) {
	account, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return 0, dErrors.New(dErrors.CodeInternal, "balance unavailable")
	}
	return account.Balance, nil
}

// Withdraw debits the account and records a WITHDRAWAL ledger entry. The debit
// and the append are atomic from the caller's perspective: if the ledger
// rejects the entry the debit is compensated before returning.
func (s *Service) Withdraw(ctx context.Context, id string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}

	unlock := s.lockAccount(id)
	defer unlock()

	balance, err := s.store.Debit(ctx, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return 0, dErrors.New(dErrors.CodeNotFound, "User not found")
		case errors.Is(err, sentinel.ErrInsufficientFunds):
			return balance, dErrors.New(dErrors.CodeInsufficientFunds, "Insufficient funds")
		default:
			return 0, dErrors.New(dErrors.CodeInternal, "withdrawal unavailable")
		}
	}

	entry := ledger.Entry{Time: s.now(), AccountID: id, Kind: models.KindWithdrawal, Amount: amount}
	if err := s.ledger.Append(ctx, entry); err != nil {
		// The mutation is unconfirmed without its ledger line; roll it back.
		if _, cerr := s.store.Credit(ctx, id, amount); cerr != nil {
			s.logger.ErrorContext(ctx, "withdrawal compensation failed",
				"account_id", id, "amount", amount, "error", cerr)
		}
		s.logger.ErrorContext(ctx, "ledger append failed", "account_id", id, "error", err)
		return 0, dErrors.New(dErrors.CodeInternal, "transaction not confirmed")
	}

	s.metrics.RecordTransaction(string(models.KindWithdrawal))
	return balance, nil
}

// Deposit credits the account and records a DEPOSIT ledger entry. There is no
// upper bound on deposits; the same atomicity rule as Withdraw applies.
func (s *Service) Deposit(ctx context.Context, id string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "amount must be positive")
	}

	unlock := s.lockAccount(id)
	defer unlock()

	balance, err := s.store.Credit(ctx, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return 0, dErrors.New(dErrors.CodeNotFound, "User not found")
		case errors.Is(err, sentinel.ErrBalanceOverflow):
			return 0, dErrors.New(dErrors.CodeBadRequest, "amount is too large")
		default:
			return 0, dErrors.New(dErrors.CodeInternal, "deposit unavailable")
		}
	}

	entry := ledger.Entry{Time: s.now(), AccountID: id, Kind: models.KindDeposit, Amount: amount}
	if err := s.ledger.Append(ctx, entry); err != nil {
		if _, derr := s.store.Debit(ctx, id, amount); derr != nil {
			s.logger.ErrorContext(ctx, "deposit compensation failed",
				"account_id", id, "amount", amount, "error", derr)
		}
		s.logger.ErrorContext(ctx, "ledger append failed", "account_id", id, "error", err)
		return 0, dErrors.New(dErrors.CodeInternal, "transaction not confirmed")
	}

	s.metrics.RecordTransaction(string(models.KindDeposit))
	return balance, nil
}
