package orders

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greennest/catalog"
)

func TestRespondBuildErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty order", ErrEmptyOrder, http.StatusBadRequest},
		{"invalid quantity", ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown plant at validation", &PlantNotFoundError{Ref: "ghost-plant"}, http.StatusNotFound},
		{"plant deleted before reservation", catalog.ErrNotFound, http.StatusNotFound},
		{"insufficient stock", &catalog.InsufficientStockError{Plant: "snake-plant", Available: 2}, http.StatusBadRequest},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		respondBuildError(rec, c.err)
		if rec.Code != c.status {
			t.Errorf("%s: expected %d, got %d", c.name, c.status, rec.Code)
		}
	}
}
