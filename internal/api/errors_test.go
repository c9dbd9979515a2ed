package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/guttosm/astropulse/internal/nasa"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/service"
	"github.com/guttosm/astropulse/internal/validation"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"date validation", &neo.ValidationError{Field: "start_date", Reason: "bad"}, http.StatusBadRequest},
		{"query validation", &validation.RequestError{Fields: []validation.FieldError{{Field: "rover", Tag: "oneof"}}}, http.StatusBadRequest},
		{"rate limited", &nasa.FetchError{Kind: nasa.KindRateLimited}, http.StatusTooManyRequests},
		{"circuit open", &nasa.FetchError{Kind: nasa.KindCircuitOpen}, http.StatusServiceUnavailable},
		{"timeout", &nasa.FetchError{Kind: nasa.KindTimeout}, http.StatusGatewayTimeout},
		{"upstream status", &nasa.FetchError{Kind: nasa.KindUpstreamStatus, StatusCode: 500}, http.StatusBadGateway},
		{"malformed", &nasa.FetchError{Kind: nasa.KindMalformed}, http.StatusBadGateway},
		{"network wrapped", fmt.Errorf("window: %w", &nasa.FetchError{Kind: nasa.KindNetwork}), http.StatusBadGateway},
		{"not found", fmt.Errorf("favorite 3: %w", service.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("favorite 3: %w", service.ErrForbidden), http.StatusForbidden},
		{"other", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, _ := statusFor(tc.err); got != tc.want {
				t.Fatalf("want %d got %d", tc.want, got)
			}
		})
	}
}
