package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageFilter(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantLimit   int
		wantOffset  int
	}{
		{"defaults", 0, 0, 10, 0},
		{"second page", 2, 25, 25, 50},
		{"negative page clamps", -3, 5, 5, 0},
		{"unlimited ignores page", 4, -1, -1, 0},
		{"junk limit falls back", 1, -7, 10, 10},
		{"page and limit are capped", math.MaxInt, math.MaxInt, MaxLimit, MaxPage * MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPageFilter(tt.page, tt.limit)
			assert.Equal(t, tt.wantLimit, f.Limit)
			assert.Equal(t, tt.wantOffset, f.Offset())
		})
	}
}

func TestSortFilter_OrderClause(t *testing.T) {
	assert.Equal(t, "", SortFilter{}.OrderClause())
	assert.Equal(t, "uid DESC", SortFilter{SortBy: "uid", SortOrder: "desc"}.OrderClause())
	assert.Equal(t, "status ASC", SortFilter{SortBy: "status"}.OrderClause())
}
