// Package ledger provides the append-only durable record of completed money
// movements. The log is write-only from the service's point of view;
// consumers that need history read the raw file externally.
package ledger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"atmgate/internal/account/models"
	"atmgate/pkg/platform/sentinel"
)

// Entry is one completed money movement. Entries are created exactly once per
// successful mutation and never modified.
type Entry struct {
	Time      time.Time
	AccountID string
	Kind      models.TransactionKind
	Amount    int64
}

// Line renders the entry in the fixed on-disk format:
// <timestamp> | User <id> | <KIND> | Rs <amount:2f>
func (e Entry) Line() string {
	return fmt.Sprintf("%s | User %s | %s | Rs %s",
		e.Time.Format(time.DateTime), e.AccountID, e.Kind, models.Rupees(e.Amount))
}

// Appender is the write side of the ledger. Implementations must either
// persist the entry or return an error; a silent drop is never acceptable.
type Appender interface {
	Append(ctx context.Context, entry Entry) error
}

// FileLedger appends entries to a local file, one line per transaction.
// A single mutex serializes writers so lines never interleave.
type FileLedger struct {
	mu   sync.Mutex
	file *os.File
}

// OpenFile opens (or creates) the ledger file in append mode.
func OpenFile(path string) (*FileLedger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open ledger %s: %w", path, err)
	}
	return &FileLedger{file: f}, nil
}

// Append writes and syncs one entry. The entry is only confirmed once it has
// reached the file; any failure is reported to the caller, who must treat the
// originating mutation as unconfirmed.
func (l *FileLedger) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.WriteString(entry.Line() + "\n"); err != nil {
		return fmt.Errorf("append ledger entry: %w: %w", sentinel.ErrUnavailable, err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying file.
func (l *FileLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
