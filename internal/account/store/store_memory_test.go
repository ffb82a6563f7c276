package store

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"atmgate/internal/account/models"
	"atmgate/pkg/platform/sentinel"
)

type AccountStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func (s *AccountStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.Require().NoError(s.store.Provision(context.Background(), models.Account{
		ID:      "1002",
		Name:    "Mithun",
		Balance: 500000,
		PINHash: HashPIN("1234"),
	}))
}

func (s *AccountStoreSuite) SetupSubTest() {
	s.SetupTest()
}

func TestAccountStoreSuite(t *testing.T) {
	suite.Run(t, new(AccountStoreSuite))
}

func (s *AccountStoreSuite) TestLookup() {
	s.Run("returns value copy when found", func() {
		a, err := s.store.Get(context.Background(), "1002")
		s.Require().NoError(err)
		s.Equal("Mithun", a.Name)
		s.Equal(int64(500000), a.Balance)

		// Mutating the copy must not reach the store.
		a.Balance = 0
		again, err := s.store.Get(context.Background(), "1002")
		s.Require().NoError(err)
		s.Equal(int64(500000), again.Balance)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Get(context.Background(), "9999")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *AccountStoreSuite) TestProvisionRejectsDuplicateID() {
	err := s.store.Provision(context.Background(), models.Account{ID: "1002"})
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *AccountStoreSuite) TestPINVerification() {
	s.Run("correct PIN verifies", func() {
		ok, err := s.store.VerifyPIN(context.Background(), "1002", "1234")
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("wrong PIN does not verify", func() {
		ok, err := s.store.VerifyPIN(context.Background(), "1002", "4321")
		s.Require().NoError(err)
		s.False(ok)
	})

	s.Run("unknown id returns ErrNotFound", func() {
		_, err := s.store.VerifyPIN(context.Background(), "9999", "1234")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *AccountStoreSuite) TestHashPINDeterministicAndOneWay() {
	s.Equal(HashPIN("1234"), HashPIN("1234"))
	s.NotEqual(HashPIN("1234"), HashPIN("1235"))
	s.NotContains(HashPIN("1234"), "1234")
	s.Len(HashPIN("1234"), 64)
}

func (s *AccountStoreSuite) TestDebitCredit() {
	s.Run("debit decrements and reports new balance", func() {
		balance, err := s.store.Debit(context.Background(), "1002", 120000)
		s.Require().NoError(err)
		s.Equal(int64(380000), balance)
	})

	s.Run("debit above balance is rejected without mutation", func() {
		_, err := s.store.Debit(context.Background(), "1002", 1000000)
		s.Require().ErrorIs(err, sentinel.ErrInsufficientFunds)

		a, getErr := s.store.Get(context.Background(), "1002")
		s.Require().NoError(getErr)
		s.Equal(int64(500000), a.Balance)
	})

	s.Run("credit increments", func() {
		balance, err := s.store.Credit(context.Background(), "1002", 2500)
		s.Require().NoError(err)
		s.Equal(int64(502500), balance)
	})

	s.Run("credit that would wrap the balance is rejected without mutation", func() {
		store := NewInMemory()
		s.Require().NoError(store.Provision(context.Background(), models.Account{
			ID:      "B1",
			Balance: math.MaxInt64 - 50,
		}))

		_, err := store.Credit(context.Background(), "B1", 100)
		s.Require().ErrorIs(err, sentinel.ErrBalanceOverflow)

		a, getErr := store.Get(context.Background(), "B1")
		s.Require().NoError(getErr)
		s.Equal(int64(math.MaxInt64-50), a.Balance)
	})
}

func (s *AccountStoreSuite) TestConcurrentDebitsNeverGoNegative() {
	store := NewInMemory()
	s.Require().NoError(store.Provision(context.Background(), models.Account{ID: "A1", Balance: 1000}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Debit(context.Background(), "A1", 100)
		}()
	}
	wg.Wait()

	a, err := store.Get(context.Background(), "A1")
	s.Require().NoError(err)
	s.Equal(int64(0), a.Balance)
}

func (s *AccountStoreSuite) TestFingerprintProvisioning() {
	artifact := []byte{0x42, 0x4d, 0x01}
	s.Require().NoError(s.store.SetFingerprintRef(context.Background(), "1002", artifact))

	a, err := s.store.Get(context.Background(), "1002")
	s.Require().NoError(err)
	s.Equal(artifact, a.FingerprintRef)

	err = s.store.SetFingerprintRef(context.Background(), "9999", artifact)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func TestSeedProvisionsFixedAccounts(t *testing.T) {
	store := NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Empty dir: every account seeds without a fingerprint reference.
	if err := Seed(context.Background(), store, t.TempDir(), logger); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, err := store.Get(context.Background(), "1001")
	if err != nil {
		t.Fatalf("get 1001: %v", err)
	}
	if a.Name != "Manjunath" || a.Balance != 750050 {
		t.Fatalf("unexpected seed row: %+v", a)
	}
	if a.FingerprintRef != nil && len(a.FingerprintRef) != 0 {
		t.Fatalf("expected empty fingerprint ref, got %d bytes", len(a.FingerprintRef))
	}

	ok, err := store.VerifyPIN(context.Background(), "1005", "1111")
	if err != nil || !ok {
		t.Fatalf("seeded PIN should verify, ok=%v err=%v", ok, err)
	}
}
