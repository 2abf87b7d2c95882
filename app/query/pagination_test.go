package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		want              PageInfo
	}{
		{
			"empty view", 0, 1, 100,
			PageInfo{Size: 100},
		},
		{
			"single partial page", 42, 1, 100,
			PageInfo{Page: 1, TotalPages: 1, Size: 100, Total: 42, End: 42, Window: []int{1}},
		},
		{
			"middle page", 1000, 5, 100,
			PageInfo{Page: 5, TotalPages: 10, Size: 100, Total: 1000, Start: 400, End: 500,
				HasPrev: true, HasNext: true, Window: []int{3, 4, 5, 6, 7}},
		},
		{
			"window shifts left at the end", 1000, 10, 100,
			PageInfo{Page: 10, TotalPages: 10, Size: 100, Total: 1000, Start: 900, End: 1000,
				HasPrev: true, Window: []int{6, 7, 8, 9, 10}},
		},
		{
			"window at the start", 1000, 2, 100,
			PageInfo{Page: 2, TotalPages: 10, Size: 100, Total: 1000, Start: 100, End: 200,
				HasPrev: true, HasNext: true, Window: []int{1, 2, 3, 4, 5}},
		},
		{
			"page past the end is clamped", 250, 9, 100,
			PageInfo{Page: 3, TotalPages: 3, Size: 100, Total: 250, Start: 200, End: 250,
				HasPrev: true, Window: []int{1, 2, 3}},
		},
		{
			"page zero is clamped", 5, 0, 2,
			PageInfo{Page: 1, TotalPages: 3, Size: 2, Total: 5, End: 2, HasNext: true, Window: []int{1, 2, 3}},
		},
		{
			"default size", 101, 2, 0,
			PageInfo{Page: 2, TotalPages: 2, Size: DefaultPageSize, Total: 101, Start: 100, End: 101,
				HasPrev: true, Window: []int{1, 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.total, tt.page, tt.size))
		})
	}
}
