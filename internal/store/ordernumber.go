package store

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderNumberLayout = "20060102150405"

// newOrderNumber is replaced in tests to force collisions.
var newOrderNumber = generateOrderNumber

// generateOrderNumber returns the UTC timestamp at second precision followed
// by four random uppercase hex digits, e.g. 20240131235959-3FA2.
func generateOrderNumber(now time.Time) string {
	id := uuid.New()
	return now.UTC().Format(orderNumberLayout) + "-" + strings.ToUpper(hex.EncodeToString(id[:2]))
}
