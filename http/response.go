package http

import (
	"errors"

	"github.com/indigo-web/statica/http/headers"
	"github.com/indigo-web/statica/http/mime"
	"github.com/indigo-web/statica/http/proto"
	"github.com/indigo-web/statica/http/status"
)

// Response is a builder of a single outgoing response. Headers keep the order they
// were added in, since that's the order they are rendered in.
type Response struct {
	Proto   proto.Proto
	Code    status.Code
	Headers []headers.Header
	Body    []byte
	// ContentLength is the declared body length. It equals len(Body), unless the body
	// is transferred separately (e.g. a file sent via sendfile) or omitted (HEAD).
	ContentLength int64
}

func NewResponse() *Response {
	return &Response{
		Proto: proto.HTTP11,
		Code:  status.OK,
	}
}

// WithCode sets the status code.
func (r *Response) WithCode(code status.Code) *Response {
	r.Code = code
	return r
}

// WithProto sets the version the status line is rendered with.
func (r *Response) WithProto(p proto.Proto) *Response {
	r.Proto = p
	return r
}

// WithHeader appends a header. Repeated keys are rendered multiple times.
func (r *Response) WithHeader(key, value string) *Response {
	r.Headers = append(r.Headers, headers.Header{Key: key, Value: value})
	return r
}

// WithContentType is a shorthand for WithHeader("Content-Type", ...)
func (r *Response) WithContentType(m mime.MIME) *Response {
	return r.WithHeader("Content-Type", m)
}

// WithBody sets the body and the content length.
func (r *Response) WithBody(body []byte) *Response {
	r.Body = body
	r.ContentLength = int64(len(body))
	return r
}

// WithString is WithBody for strings.
func (r *Response) WithString(body string) *Response {
	return r.WithBody([]byte(body))
}

// WithContentLength declares the body length without attaching the body itself.
func (r *Response) WithContentLength(length int64) *Response {
	r.ContentLength = length
	return r
}

// Header returns the value of the first header with the key, if any. Keys are compared
// exactly.
func (r *Response) Header(key string) (string, bool) {
	for _, header := range r.Headers {
		if header.Key == key {
			return header.Value, true
		}
	}

	return "", false
}

// Error builds a response out of an error. HTTPError determines the status code. The
// whole error chain becomes the body of 4xx responses, whereas 5xx ones carry only the
// HTTPError's own message, so internals don't leak.
func Error(err error) *Response {
	message := status.ErrInternalServerError.Error()
	code := status.InternalServerError
	var httpErr status.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = httpErr.Message
		if code < status.InternalServerError {
			message = err.Error()
		}
	}

	response := NewResponse().
		WithCode(code).
		WithHeader("Connection", "close")

	if len(message) > 0 {
		response.WithContentType(mime.Plain).WithString(message)
	}

	if code == status.MethodNotAllowed {
		response.WithHeader("Allow", "GET, HEAD")
	}

	return response
}
