package ledger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"atmgate/internal/account/models"
)

type FileLedgerSuite struct {
	suite.Suite
	path   string
	ledger *FileLedger
}

func (s *FileLedgerSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "transactions.log")
	l, err := OpenFile(s.path)
	s.Require().NoError(err)
	s.ledger = l
}

func (s *FileLedgerSuite) TearDownTest() {
	s.Require().NoError(s.ledger.Close())
}

func TestFileLedgerSuite(t *testing.T) {
	suite.Run(t, new(FileLedgerSuite))
}

func (s *FileLedgerSuite) TestLineFormat() {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	err := s.ledger.Append(context.Background(), Entry{
		Time:      at,
		AccountID: "1002",
		Kind:      models.KindWithdrawal,
		Amount:    120000,
	})
	s.Require().NoError(err)

	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("2025-03-14 09:26:53 | User 1002 | WITHDRAWAL | Rs 1200.00\n", string(raw))
}

func (s *FileLedgerSuite) TestAppendOnly() {
	entries := []Entry{
		{Time: time.Now(), AccountID: "1001", Kind: models.KindDeposit, Amount: 5000},
		{Time: time.Now(), AccountID: "1001", Kind: models.KindWithdrawal, Amount: 2500},
		{Time: time.Now(), AccountID: "1003", Kind: models.KindDeposit, Amount: 100},
	}
	for _, e := range entries {
		s.Require().NoError(s.ledger.Append(context.Background(), e))
	}

	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	s.Require().Len(lines, len(entries))
	s.Contains(lines[0], "DEPOSIT")
	s.Contains(lines[1], "WITHDRAWAL")
	s.Contains(lines[2], "User 1003")
}

func (s *FileLedgerSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.ledger.Append(ctx, Entry{Time: time.Now(), AccountID: "1001", Kind: models.KindDeposit, Amount: 100})
	s.Error(err)

	raw, readErr := os.ReadFile(s.path)
	s.Require().NoError(readErr)
	s.Empty(raw)
}

func TestMemoryLedgerPreservesCallOrder(t *testing.T) {
	l := NewMemoryLedger()
	for i, kind := range []models.TransactionKind{models.KindDeposit, models.KindWithdrawal, models.KindDeposit} {
		err := l.Append(context.Background(), Entry{Time: time.Now(), AccountID: "1005", Kind: kind, Amount: int64(i+1) * 100})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries := l.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Kind != models.KindWithdrawal || entries[1].Amount != 200 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}
