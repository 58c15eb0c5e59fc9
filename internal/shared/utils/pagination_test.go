package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/helpdesk/internal/shared/query"
)

func pageContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/tickets?"+rawQuery, nil)
	return c
}

func TestParsePageFilter(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 0, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"unlimited", "limit=-1", 0, query.Unlimited},
		{"negative page", "page=-4", 0, 10},
		{"huge page is capped", "page=" + strconv.Itoa(math.MaxInt), query.MaxPage, 10},
		{"huge limit is capped", "limit=99999999", 0, query.MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParsePageFilter(pageContext(tt.rawQuery), 10)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
			assert.GreaterOrEqual(t, f.Offset(), 0)
		})
	}
}
