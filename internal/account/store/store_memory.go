package store

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math"
	"sync"

	"atmgate/internal/account/models"
	"atmgate/pkg/platform/sentinel"
)

// InMemoryStore owns all account records. It is the sole mutator of balances
// and PIN hashes; every mutation happens under the store lock so a
// check-then-mutate sequence can never race another caller.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[string]*models.Account)}
}

// HashPIN derives the stored digest for a PIN: SHA-256, hex encoded. The
// transform is deterministic so digests compare by equality, and one-way so
// the plaintext PIN is never recoverable from the store.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// Provision registers a new account. IDs are immutable keys; provisioning an
// existing ID is a programming error surfaced as a conflict.
func (s *InMemoryStore) Provision(_ context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := account
	s.accounts[account.ID] = &cp
	return nil
}

// Get returns a value copy of the account so callers cannot reach internal state.
func (s *InMemoryStore) Get(_ context.Context, id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, sentinel.ErrNotFound
	}
	cp := *a
	cp.FingerprintRef = append([]byte{}, a.FingerprintRef...)
	return cp, nil
}

// VerifyPIN reports whether the PIN digest matches the stored one. The compare
// is constant time so timing does not reveal how much of the digest matched.
func (s *InMemoryStore) VerifyPIN(_ context.Context, id, pin string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	return subtle.ConstantTimeCompare([]byte(a.PINHash), []byte(HashPIN(pin))) == 1, nil
}

// SetFingerprintRef installs the reference artifact. Provisioning-time only.
func (s *InMemoryStore) SetFingerprintRef(_ context.Context, id string, artifact []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.FingerprintRef = append([]byte{}, artifact...)
	return nil
}

// Debit atomically checks and decrements the balance. The balance never goes
// negative: an amount above the current balance returns ErrInsufficientFunds
// and leaves the account untouched.
func (s *InMemoryStore) Debit(_ context.Context, id string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	if amount > a.Balance {
		return a.Balance, sentinel.ErrInsufficientFunds
	}
	a.Balance -= amount
	return a.Balance, nil
}

// Credit atomically increments the balance. Deposits have no business upper
// bound, but a credit that would wrap the int64 balance is refused so the
// non-negative invariant can never break through overflow.
func (s *InMemoryStore) Credit(_ context.Context, id string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	if amount > math.MaxInt64-a.Balance {
		return a.Balance, sentinel.ErrBalanceOverflow
	}
	a.Balance += amount
	return a.Balance, nil
}
