package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// unitNamespace seeds deterministic finished-product unit ids. Fixed so a
// batch always derives the same unit set.
var unitNamespace = uuid.MustParse("7b1f3c52-9a44-4d6e-8c17-2f05e3b9a001")

// NewSessionID returns a fresh id for one UI session/request context.
func NewSessionID() string {
	return uuid.New().String()
}

// UnitID derives the n-th finished-product unit id for a batch. The
// derivation is deterministic: anyone holding the batch id can recompute
// the full unit set.
func UnitID(batchID string, n int) string {
	return uuid.NewSHA1(unitNamespace, []byte(fmt.Sprintf("%s/%d", batchID, n))).String()
}
