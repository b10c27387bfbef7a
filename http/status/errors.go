package status

import "errors"

// HTTPError is a request-scoped failure carrying the status code it must be
// answered with. Message is optional and becomes the response body.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

// CodeOf extracts the status code out of an error chain. Errors without an
// HTTPError inside are considered internal ones.
func CodeOf(err error) Code {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return InternalServerError
}

var (
	ErrBadRequest              = NewError(BadRequest, "bad request")
	ErrNotFound                = NewError(NotFound, "not found")
	ErrMethodNotAllowed        = NewError(MethodNotAllowed, "method not allowed")
	ErrHeaderFieldsTooLarge    = NewError(RequestHeaderFieldsTooLarge, "request is too large")
	ErrHTTPVersionNotSupported = NewError(HTTPVersionNotSupported, "HTTP version not supported")
	ErrInternalServerError     = NewError(InternalServerError, "internal server error")
)
