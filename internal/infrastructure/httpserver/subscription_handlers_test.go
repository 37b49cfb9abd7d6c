package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/feathermail/newsletter-service/internal/core/domain/subscription"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &subscription.ValidationError{Message: "bad name"}, http.StatusBadRequest},
		{"not found", &subscription.NotFoundError{Token: "doesnotexist"}, http.StatusBadRequest},
		{"persistence", &subscription.PersistenceError{Err: errors.New("down")}, http.StatusInternalServerError},
		{"dispatch", &subscription.DispatchError{Err: errors.New("timeout")}, http.StatusInternalServerError},
		{"wrapped persistence", fmt.Errorf("subscribe: %w", &subscription.PersistenceError{Err: errors.New("down")}), http.StatusInternalServerError},
		{"unrecognized", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorStatus(tt.err); got != tt.want {
				t.Errorf("errorStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
