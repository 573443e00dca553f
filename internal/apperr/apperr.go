// Package apperr holds the error taxonomy shared by services and handlers.
//
// Services return *Error values for conditions the client can act on
// (not found, conflict, invalid input, access denied). Anything else is
// treated as a server fault by Respond and never leaks to the client.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Category string

const (
	CategoryBusiness Category = "BUSINESS"
	CategoryRule     Category = "RULE"
	CategoryServer   Category = "SERVER"
	CategorySecurity Category = "SECURITY"
)

type Error struct {
	Status   int
	Category Category
	Message  string
	Err      error

	// RetryAfter is set on 429 responses, in seconds.
	RetryAfter int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, category Category, msg string) *Error {
	return &Error{Status: status, Category: category, Message: msg}
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CategoryBusiness, msg)
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, CategoryBusiness, msg)
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, CategoryRule, msg)
}

func Badf(format string, args ...any) *Error {
	return BadRequest(fmt.Sprintf(format, args...))
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CategorySecurity, msg)
}

func Forbidden(msg string) *Error {
	return New(http.StatusForbidden, CategorySecurity, msg)
}

// TooManyRequests is a RULE violation unless the limit protects credentials,
// in which case it is reported as SECURITY.
func TooManyRequests(retryAfter int, security bool) *Error {
	cat := CategoryRule
	if security {
		cat = CategorySecurity
	}
	e := New(http.StatusTooManyRequests, cat, "Too many requests, please try again later")
	e.RetryAfter = retryAfter
	return e
}

func Timeout() *Error {
	return New(http.StatusServiceUnavailable, CategoryServer, "Request timeout")
}

func Internal(err error) *Error {
	return &Error{
		Status:   http.StatusInternalServerError,
		Category: CategoryServer,
		Message:  "Internal server error",
		Err:      err,
	}
}

// AsBadRequest keeps typed errors as they are and turns anything else into a
// RULE 400 carrying the inner message. Used by the transactional create flows.
func AsBadRequest(err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Status: http.StatusBadRequest, Category: CategoryRule, Message: err.Error(), Err: err}
}

// FromDB translates gorm sentinel errors. what names the entity, e.g. "Shelter".
func FromDB(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(what + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Status: http.StatusConflict, Category: CategoryBusiness, Message: what + " already exists", Err: err}
	default:
		return err
	}
}

// Validation converts binding/validator failures into a RULE 400.
func Validation(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return &Error{Status: http.StatusBadRequest, Category: CategoryRule, Message: strings.Join(msgs, "; "), Err: err}
	}
	return &Error{Status: http.StatusBadRequest, Category: CategoryRule, Message: err.Error(), Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
