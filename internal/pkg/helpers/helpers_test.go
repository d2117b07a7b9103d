package helpers

import (
	"testing"
	"time"
)

func TestCalculateOffsetLimit(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"negative page defaults to first", -5, 10, 0, 10},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"oversized size uses default", 2, 500, 10, DefaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			if offset != tc.wantOffset || limit != tc.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.size, offset, limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	cases := []struct {
		name        string
		total       int64
		page, size  int
		wantPages   int
		wantCurrent int
	}{
		{"exact division", 20, 1, 10, 2, 1},
		{"partial last page", 21, 1, 10, 3, 1},
		{"empty first page", 0, 1, 10, 1, 1},
		{"page past the end clamps", 10, 5, 10, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := NewPaginationInfo(tc.total, tc.page, tc.size)
			if info.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", info.TotalPages, tc.wantPages)
			}
			if info.CurrentPage != tc.wantCurrent {
				t.Errorf("CurrentPage = %d, want %d", info.CurrentPage, tc.wantCurrent)
			}
			if info.TotalItems != tc.total {
				t.Errorf("TotalItems = %d, want %d", info.TotalItems, tc.total)
			}
		})
	}
}

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{4.27, 4.3},
		{4.24, 4.2},
		{4.25, 4.3},
		{5.0, 5.0},
		{0, 0},
	}

	for _, tc := range cases {
		if got := RoundRating(tc.in); got != tc.want {
			t.Errorf("RoundRating(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("90m", time.Hour); got != 90*time.Minute {
		t.Errorf("ParseDuration(90m) = %v, want 90m", got)
	}
	if got := ParseDuration("not-a-duration", time.Hour); got != time.Hour {
		t.Errorf("ParseDuration(invalid) = %v, want the default 1h", got)
	}
}
