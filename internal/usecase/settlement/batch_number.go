package settlement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vendaforte/cartela-reward-service/internal/domain"
)

const batchNumberPrefix = "LOTE"

// nextBatchNumber allocates the next LOTE-YYYY-MM-NNN number for the
// month of now. The sequence restarts each calendar month and is derived
// from the highest suffix already persisted under that month's prefix.
func nextBatchNumber(repo domain.PayoutRepository, now time.Time) (string, error) {
	prefix := fmt.Sprintf("%s-%04d-%02d-", batchNumberPrefix, now.Year(), int(now.Month()))

	max, err := repo.MaxBatchNumberWithPrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("failed to read batch sequence for %s: %w", prefix, err)
	}

	seq := 1
	if max != "" {
		suffix := strings.TrimPrefix(max, prefix)
		last, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("malformed batch number %q: %w", max, err)
		}
		seq = last + 1
	}

	return fmt.Sprintf("%s%03d", prefix, seq), nil
}
