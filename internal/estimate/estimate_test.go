package estimate

import "testing"

func TestForChange(t *testing.T) {
	cases := []struct {
		lines, files int
		bucket       string
		points       int
	}{
		{0, 0, "XS", 1},
		{20, 2, "XS", 1},
		{21, 1, "S", 2},
		{100, 5, "S", 2},
		{101, 3, "M", 3},
		{400, 15, "M", 3},
		{401, 10, "L", 5},
		{1000, 30, "L", 5},
		{1001, 4, "XL", 8},
		// Files dominate when they indicate broader work than the line count.
		{10, 6, "M", 3},
		{10, 40, "XL", 8},
	}
	for _, tc := range cases {
		got := ForChange(tc.lines, tc.files)
		if got.Bucket != tc.bucket || got.Points != tc.points {
			t.Fatalf("ForChange(%d, %d) = %+v, want %s/%d", tc.lines, tc.files, got, tc.bucket, tc.points)
		}
	}
}
