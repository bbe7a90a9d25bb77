package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewInvoiceNumber builds the human-facing invoice identifier,
// INV-YYYYMMDD-XXXXXXXX. The suffix comes from a fresh UUID, so numbers stay
// collision-resistant under concurrent checkouts.
func NewInvoiceNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), strings.ToUpper(suffix))
}
