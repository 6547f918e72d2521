package authUtils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/issues"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantSkip  int64
	}{
		{"defaults", "", 1, 10, 0},
		{"explicit", "?page=3&limit=10", 3, 10, 20},
		{"zero page clamped", "?page=0", 1, 10, 0},
		{"negative page clamped", "?page=-2", 1, 10, 0},
		{"oversized limit reset", "?limit=500", 1, 10, 0},
		{"garbage ignored", "?page=abc&limit=xyz", 1, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := paramsFor(t, tc.query)
			require.Equal(t, tc.wantPage, params.Page)
			require.Equal(t, tc.wantLimit, params.Limit)
			require.Equal(t, tc.wantSkip, params.Skip)
		})
	}
}

func TestTotalPages(t *testing.T) {
	// 25 matching issues at pageSize 10: page 3 holds the last 5 items and
	// page 4 is empty but valid.
	require.Equal(t, int64(3), TotalPages(25, 10))
	require.Equal(t, int64(1), TotalPages(10, 10))
	require.Equal(t, int64(0), TotalPages(0, 10))
	require.Equal(t, int64(1), TotalPages(1, 10))
	require.Equal(t, int64(0), TotalPages(25, 0))
}
