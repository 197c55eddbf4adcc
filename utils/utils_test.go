package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(14)
	if len(id) != 14 {
		t.Errorf("expected length 14, got %d", len(id))
	}
	if GenerateID(14) == id && GenerateID(14) == id {
		t.Error("ids should not repeat")
	}
}

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{24.99 * 3, 74.97},
		{19.99 * 2, 39.98},
		{0, 0},
		{10.005, 10.01},
		{10.004, 10.0},
	}
	for _, c := range cases {
		if got := RoundCents(c.in); got != c.want {
			t.Errorf("RoundCents(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/plants", nil)
	skip, limit := ParsePagination(r, 20, 100)
	if skip != 0 || limit != 20 {
		t.Errorf("defaults: got skip=%d limit=%d", skip, limit)
	}

	r = httptest.NewRequest("GET", "/api/plants?page=3&limit=10", nil)
	skip, limit = ParsePagination(r, 20, 100)
	if skip != 20 || limit != 10 {
		t.Errorf("page 3 limit 10: got skip=%d limit=%d", skip, limit)
	}

	r = httptest.NewRequest("GET", "/api/plants?limit=5000", nil)
	_, limit = ParsePagination(r, 20, 100)
	if limit != 100 {
		t.Errorf("limit must cap at max, got %d", limit)
	}

	r = httptest.NewRequest("GET", "/api/plants?page=-2", nil)
	skip, _ = ParsePagination(r, 20, 100)
	if skip != 0 {
		t.Errorf("negative page must clamp to first, got skip=%d", skip)
	}
}
