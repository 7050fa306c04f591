package paging

import (
	"reflect"
	"testing"
)

func TestPages(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	pages := Pages(items, 4)
	want := [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10}}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("Pages(10 items, 4) = %v, want %v", pages, want)
	}

	if got := Pages([]int{}, 4); len(got) != 0 {
		t.Errorf("Pages(empty, 4) = %v, want no pages", got)
	}

	// A non-positive size collapses everything onto one page
	if got := Pages(items, 0); len(got) != 1 || len(got[0]) != 10 {
		t.Errorf("Pages(10 items, 0) = %v, want a single full page", got)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{10, 4, 3},
		{8, 4, 2},
		{1, 4, 1},
		{0, 4, 0},
		{10, 0, 0},
		{4, 4, 1},
		{5, 4, 2},
	}
	for _, tt := range tests {
		if got := Count(tt.n, tt.size); got != tt.want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	tests := []struct {
		page, size int
		want       []string
	}{
		{1, 4, []string{"a", "b", "c", "d"}},
		{2, 4, []string{"e", "f", "g", "h"}},
		{3, 4, []string{"i", "j"}},
		{4, 4, nil},
		{0, 4, nil},
		{1, 0, nil},
	}
	for _, tt := range tests {
		got := Page(items, tt.page, tt.size)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Page(%d, %d) = %v, want %v", tt.page, tt.size, got, tt.want)
		}
	}
}
