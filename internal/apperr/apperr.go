// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable failure kind.
type Code string

const (
	CodeInvalidDate         Code = "INVALID_DATE"
	CodeDateNotInPast       Code = "DATE_NOT_IN_PAST"
	CodeUnderage            Code = "UNDERAGE"
	CodeDuplicateIdentity   Code = "DUPLICATE_IDENTITY"
	CodeMemberNotFound      Code = "MEMBER_NOT_FOUND"
	CodeInstructorNotFound  Code = "INSTRUCTOR_NOT_FOUND"
	CodeClassTypeNotFound   Code = "CLASS_TYPE_NOT_FOUND"
	CodeLocationNotFound    Code = "LOCATION_NOT_FOUND"
	CodeTimeslotNotFound    Code = "TIMESLOT_NOT_FOUND"
	CodeSessionNotFound     Code = "SESSION_NOT_FOUND"
	CodeMembershipExpired   Code = "MEMBERSHIP_EXPIRED"
	CodeLocationRestricted  Code = "LOCATION_RESTRICTED"
	CodeTimeConflict        Code = "TIME_CONFLICT"
	CodeGuestPassExhausted  Code = "GUEST_PASS_EXHAUSTED"
	CodeGuestPassAtCapacity Code = "GUEST_PASS_AT_CAPACITY"
	CodeAlreadyCheckedIn    Code = "ALREADY_CHECKED_IN"
	CodeNotEnrolled         Code = "NOT_ENROLLED"
	CodeGuestNotCheckedIn   Code = "GUEST_NOT_CHECKED_IN"
	CodeTierForbidsGuests   Code = "TIER_FORBIDS_GUESTS"
	CodeInvalidTier         Code = "INVALID_TIER"
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeInternal            Code = "INTERNAL"
)

// Error is a domain failure carrying its code.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal
// for any other non-nil error. A nil error has no code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps a code onto a response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeMemberNotFound, CodeInstructorNotFound, CodeClassTypeNotFound,
		CodeLocationNotFound, CodeTimeslotNotFound, CodeSessionNotFound:
		return http.StatusNotFound
	case CodeDuplicateIdentity, CodeAlreadyCheckedIn, CodeTimeConflict,
		CodeGuestPassExhausted, CodeGuestPassAtCapacity:
		return http.StatusConflict
	case CodeInvalidDate, CodeDateNotInPast, CodeUnderage, CodeMembershipExpired,
		CodeLocationRestricted, CodeNotEnrolled, CodeGuestNotCheckedIn,
		CodeTierForbidsGuests, CodeInvalidTier:
		return http.StatusUnprocessableEntity
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
