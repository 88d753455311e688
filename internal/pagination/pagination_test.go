package pagination

import "testing"

func TestDefaults(t *testing.T) {
	var req PageRequest
	req.Defaults()
	if req.Page != 1 || req.PageSize != DefaultPageSize {
		t.Errorf("expected page 1 size %d, got page %d size %d", DefaultPageSize, req.Page, req.PageSize)
	}

	set := PageRequest{Page: 3, PageSize: 50}
	set.Defaults()
	if set.Page != 3 || set.PageSize != 50 {
		t.Errorf("explicit values must survive Defaults, got page %d size %d", set.Page, set.PageSize)
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 4, PageSize: 25}
	if got := req.Offset(); got != 75 {
		t.Errorf("expected offset 75, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	res := NewPageResponse([]int{1, 2, 3}, 1, 3, 7)
	if res.TotalPages != 3 {
		t.Errorf("expected 3 total pages for 7 items of size 3, got %d", res.TotalPages)
	}

	empty := NewPageResponse[int](nil, 1, DefaultPageSize, 0)
	if empty.Data == nil {
		t.Error("expected nil data normalized to an empty slice")
	}
}
