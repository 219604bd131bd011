package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		limit   int
		offset  int
		hasMore bool
	}{
		{"empty", 0, 50, 0, false},
		{"single page", 10, 50, 0, false},
		{"exactly full page", 50, 50, 0, false},
		{"one past the page", 51, 50, 0, true},
		{"middle page", 120, 50, 50, true},
		{"last partial page", 120, 50, 100, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.limit, tc.offset)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.offset, p.Offset)
			assert.Equal(t, tc.hasMore, p.HasMore)
		})
	}
}
