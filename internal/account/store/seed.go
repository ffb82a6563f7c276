package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"atmgate/internal/account/models"
)

// seedAccount is one provisioning row. PINs exist only here, at provisioning
// time; the store keeps digests.
type seedAccount struct {
	ID      string
	Name    string
	Balance int64
	PIN     string
}

// seedSet is the fixed demo population. Accounts are created at startup and
// never deleted.
var seedSet = []seedAccount{
	{ID: "1001", Name: "Manjunath", Balance: 750050, PIN: "1100"},
	{ID: "1002", Name: "Mithun", Balance: 500000, PIN: "1234"},
	{ID: "1003", Name: "Kushal", Balance: 550000, PIN: "5678"},
	{ID: "1004", Name: "Pruthviraj", Balance: 700000, PIN: "1010"},
	{ID: "1005", Name: "Pruthvi K M", Balance: 200000, PIN: "1111"},
}

// Seed provisions the fixed account set and installs fingerprint references
// from <dir>/<id>.BMP. A missing reference image is tolerated with a warning;
// that account simply cannot pass the biometric factor until provisioned.
func Seed(ctx context.Context, s *InMemoryStore, dir string, logger *slog.Logger) error {
	for _, row := range seedSet {
		account := models.Account{
			ID:      row.ID,
			Name:    row.Name,
			Balance: row.Balance,
			PINHash: HashPIN(row.PIN),
		}

		ref, err := os.ReadFile(filepath.Join(dir, row.ID+".BMP"))
		if err != nil {
			logger.Warn("no fingerprint reference on file",
				"account_id", row.ID,
				"error", err,
			)
		} else {
			account.FingerprintRef = ref
		}

		if err := s.Provision(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
