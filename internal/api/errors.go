package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/middleware"
	"github.com/guttosm/astropulse/internal/nasa"
	"github.com/guttosm/astropulse/internal/neo"
	"github.com/guttosm/astropulse/internal/service"
	"github.com/guttosm/astropulse/internal/validation"
)

// writeError maps a service error to its HTTP status and aborts with a JSON
// body. It is the only place where domain errors become status codes.
//
//   - neo.ValidationError, validation.RequestError: 400
//   - nasa.FetchError rate_limited: 429, circuit_open: 503, timeout: 504,
//     any other kind: 502
//   - service.ErrNotFound: 404, service.ErrForbidden: 403
//   - anything else: 500 without details
func writeError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		middleware.AbortWithError(c, status, message, nil)
		return
	}
	middleware.AbortWithError(c, status, message, err)
}

func statusFor(err error) (int, string) {
	var (
		ve *neo.ValidationError
		re *validation.RequestError
		fe *nasa.FetchError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &re):
		return http.StatusBadRequest, "Invalid request"
	case errors.As(err, &fe):
		switch fe.Kind {
		case nasa.KindRateLimited:
			return http.StatusTooManyRequests, "Upstream rate limit exceeded"
		case nasa.KindCircuitOpen:
			return http.StatusServiceUnavailable, "Upstream temporarily unavailable"
		case nasa.KindTimeout:
			return http.StatusGatewayTimeout, "Upstream request timed out"
		default:
			return http.StatusBadGateway, "Upstream request failed"
		}
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// badQuery reports a query parameter that could not be parsed at all.
func badQuery(c *gin.Context, field string, err error) {
	writeError(c, &neo.ValidationError{Field: field, Reason: "invalid value", Err: err})
}
