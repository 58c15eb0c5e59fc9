// Package shared provides reusable domain logic shared across aggregates.
package shared

// AddID adds id to the slice if not already present.
// Returns the updated slice and true if the ID was added.
func AddID(ids []uint, id uint) ([]uint, bool) {
	for _, existing := range ids {
		if existing == id {
			return ids, false
		}
	}
	return append(ids, id), true
}

// RemoveID removes id from the slice.
// Returns the updated slice and true if the ID was removed.
func RemoveID(ids []uint, id uint) ([]uint, bool) {
	for i, existing := range ids {
		if existing == id {
			out := make([]uint, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), true
		}
	}
	return ids, false
}

// HasID checks if id exists in the slice.
func HasID(ids []uint, id uint) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

// CopyIDs returns a copy that is never nil.
func CopyIDs(ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	return out
}
