package http1

import "github.com/indigo-web/statica/http/status"

var (
	ErrMalformedRequestLine = status.NewError(status.BadRequest, "malformed request line")
	ErrUnknownMethod        = status.NewError(status.BadRequest, "unknown method")
	ErrInvalidURIChar       = status.NewError(status.BadRequest, "invalid character in URI")
	ErrMalformedVersion     = status.NewError(status.BadRequest, "malformed HTTP version")
	ErrTrailingGarbage      = status.NewError(status.BadRequest, "invalid characters after HTTP version")
	ErrUnsupportedVersion   = status.NewError(status.HTTPVersionNotSupported, "unsupported HTTP version")
	ErrInvalidHeaderName    = status.NewError(status.BadRequest, "invalid header name")
	ErrMalformedHeaderLine  = status.NewError(status.BadRequest, "malformed header line")
	ErrMissingTerminator    = status.NewError(status.BadRequest, `missing \r\n\r\n after the headers`)
)
