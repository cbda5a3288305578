// internal/httpx/httpx.go
package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"

	"golang.org/x/time/rate"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteError renders err as {"code", "message"}. Errors without a code are
// logged and reported as INTERNAL without their text.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Printf("Internal error: %v", err)
		appErr = apperr.New(apperr.CodeInternal, "internal error")
	}
	WriteJSON(w, apperr.HTTPStatus(appErr.Code), appErr)
}

// DecodeJSON reads the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.New(apperr.CodeInvalidArgument, "invalid request body: %v", err)
	}
	return nil
}

// ParseDate reads an M/D/YYYY field. Text that is not a date at all is
// reported the same way as an impossible date.
func ParseDate(field, value string) (calendar.Date, error) {
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, apperr.New(apperr.CodeInvalidDate, "%s %q: invalid calendar date", field, value)
	}
	return d, nil
}

// RateLimit rejects requests beyond the limiter's budget with 429.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				WriteError(w, apperr.New(apperr.CodeRateLimited, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
