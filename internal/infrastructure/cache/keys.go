package cache

import (
	"encoding/hex"
	"slices"
	"strconv"

	"github.com/zeebo/blake3"
)

const (
	QuickStatsKey = "quickstats"

	overdueKeyPrefix = "tickets:overdue:"
)

// OverdueKey fingerprints a group set. Order and duplicates do not change the
// key.
func OverdueKey(groupIDs []uint) string {
	ids := slices.Clone(groupIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	h := blake3.New()
	buf := make([]byte, 0, 16)
	for _, id := range ids {
		buf = strconv.AppendUint(buf[:0], uint64(id), 10)
		buf = append(buf, ',')
		_, _ = h.Write(buf)
	}
	return overdueKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
