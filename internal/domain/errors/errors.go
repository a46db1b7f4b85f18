// Package errors defines the application error model. Every domain error
// carries a stable numeric code and an HTTP status; the error middleware
// renders them as `{"errors":[{"code":...,"message":"..."}]}`.
package errors

import (
	"net/http"

	"pocketlib/internal/errors"
)

// AppError is the interface implemented by all application errors.
type AppError interface {
	error
	HTTPCode() int   // HTTP status code
	Code() int       // Stable numeric business code
	Message() string // User-facing error message
}

// BaseError is the basic AppError implementation.
type BaseError struct {
	httpCode int
	code     int
	message  string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode, code int, message string) *BaseError {
	return &BaseError{
		httpCode: httpCode,
		code:     code,
		message:  message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Code returns the numeric business code.
func (e *BaseError) Code() int {
	return e.code
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Credential and transport errors, checked in this fixed order before any
// domain logic runs.
var (
	ErrAuthorizationHeaderMissing = NewBaseError(
		http.StatusUnauthorized,
		1101,
		"Authorization header is missing",
	)

	ErrInvalidSession = NewBaseError(
		http.StatusUnauthorized,
		1102,
		"The session does not exist or the access token is invalid",
	)

	ErrWrongApplicationScope = NewBaseError(
		http.StatusForbidden,
		1103,
		"The access token was issued for a different application",
	)

	ErrActionNotAllowed = NewBaseError(
		http.StatusForbidden,
		1104,
		"Action not allowed",
	)

	ErrContentTypeNotSupported = NewBaseError(
		http.StatusUnsupportedMediaType,
		1105,
		"Content type not supported",
	)
)

// Subject resolution errors for the "mine" path alias.
var (
	ErrUserIsNotAuthor = NewBaseError(
		http.StatusBadRequest,
		1201,
		"The user is not an author",
	)

	ErrUserIsNotPublisher = NewBaseError(
		http.StatusBadRequest,
		1202,
		"The user is not a publisher",
	)

	ErrUserIsAlreadyAuthor = NewBaseError(
		http.StatusUnprocessableEntity,
		1203,
		"The user is already an author",
	)

	ErrUserIsAlreadyPublisher = NewBaseError(
		http.StatusUnprocessableEntity,
		1204,
		"The user is already a publisher",
	)
)

// ErrLanguageNotSupported supersedes all field validation errors and is
// always returned alone.
var ErrLanguageNotSupported = NewBaseError(
	http.StatusBadRequest,
	1301,
	"The language is not supported",
)

// Precondition failures: the payload was well-formed but the operation is
// currently illegal for the resource's state.
var (
	ErrStoreBookReleaseAlreadyPublished = NewBaseError(
		http.StatusPreconditionFailed,
		1501,
		"The store book release is already published",
	)

	ErrStoreBookNotPublished = NewBaseError(
		http.StatusPreconditionFailed,
		1502,
		"The store book has not been published yet",
	)

	ErrStoreBookContentImmutable = NewBaseError(
		http.StatusUnprocessableEntity,
		1503,
		"Published content cannot be modified",
	)

	ErrInvalidStatusTransition = NewBaseError(
		http.StatusUnprocessableEntity,
		1504,
		"The status transition is not allowed",
	)

	ErrCannotPublishWithoutCover = NewBaseError(
		http.StatusUnprocessableEntity,
		1505,
		"The store book cannot be published without a cover",
	)

	ErrCannotPublishWithoutFile = NewBaseError(
		http.StatusUnprocessableEntity,
		1506,
		"The store book cannot be published without a file",
	)

	ErrCannotPublishWithoutDescription = NewBaseError(
		http.StatusUnprocessableEntity,
		1507,
		"The store book cannot be published without a description",
	)

	ErrSeriesNameRequired = NewBaseError(
		http.StatusUnprocessableEntity,
		1508,
		"The series requires a name in at least one language",
	)
)

// Not-found errors, one per resource type.
var (
	ErrAuthorNotFound = NewBaseError(
		http.StatusNotFound,
		2801,
		"The author does not exist",
	)

	ErrPublisherNotFound = NewBaseError(
		http.StatusNotFound,
		2802,
		"The publisher does not exist",
	)

	ErrStoreBookNotFound = NewBaseError(
		http.StatusNotFound,
		2803,
		"The store book does not exist",
	)

	ErrStoreBookCollectionNotFound = NewBaseError(
		http.StatusNotFound,
		2804,
		"The store book collection does not exist",
	)

	ErrStoreBookReleaseNotFound = NewBaseError(
		http.StatusNotFound,
		2805,
		"The store book release does not exist",
	)

	ErrStoreBookSeriesNotFound = NewBaseError(
		http.StatusNotFound,
		2806,
		"The store book series does not exist",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		2807,
		"The category does not exist",
	)
)

// ErrUpstream covers failed calls to external collaborators. It never
// leaks internal detail to the caller.
var ErrUpstream = NewBaseError(
	http.StatusBadGateway,
	3000,
	"An upstream service is unavailable",
)

// FieldCode is one validation failure.
type FieldCode struct {
	Code    int
	Message string
}

// ValidationError carries the full ordered list of field validation codes
// for one request. The error middleware expands it into one errors entry
// per field code.
type ValidationError struct {
	Fields []FieldCode
}

// NewValidationError creates a ValidationError from field codes.
func NewValidationError(fields ...FieldCode) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	return e.Fields[0].Message
}

// HTTPCode returns the HTTP status code.
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// Code returns the first field code.
func (e *ValidationError) Code() int {
	if len(e.Fields) == 0 {
		return 0
	}

	return e.Fields[0].Code
}

// Message returns the first field message.
func (e *ValidationError) Message() string {
	return e.Error()
}
