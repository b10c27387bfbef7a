package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/indigo-web/statica/http"
	"github.com/indigo-web/statica/http/method"
	"github.com/indigo-web/statica/http/mime"
	"github.com/indigo-web/statica/http/status"
	"github.com/indigo-web/statica/internal/protocol/http1"
	"github.com/indigo-web/statica/transport"
)

const index = "index.html"

var (
	ErrPathTraversal = status.NewError(status.BadRequest, "path traversal is not allowed")
	ErrNotAbsolute   = status.NewError(status.BadRequest, "request target must be an absolute path")
	// ErrTransfer is returned when the response has been (partially) sent already, so
	// it cannot be replaced with an error response anymore.
	ErrTransfer = errors.New("transfer failed")
)

// Resource is a regular file opened for transfer.
type Resource struct {
	File *os.File
	Size int64
	MIME mime.MIME
}

func (r *Resource) Close() error {
	return r.File.Close()
}

// Resolver maps request URIs onto regular files under the root directory.
type Resolver struct {
	root   string
	strict bool
	open   func(name string) (*os.File, error)
}

// New returns a resolver serving files from the root. The root is made absolute,
// therefore a relative one containing dots is still legal.
func New(root string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		root: strings.TrimSuffix(filepath.ToSlash(abs), "/"),
		open: os.Open,
	}, nil
}

// Strict makes files with extensions unknown to the MIME table unservable instead of
// falling back to application/octet-stream.
func (r *Resolver) Strict() *Resolver {
	r.strict = true
	return r
}

// Opener replaces the function files are opened with, os.Open by default.
func (r *Resolver) Opener(open func(name string) (*os.File, error)) *Resolver {
	r.open = open
	return r
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Path joins the root with the request URI, its query being dropped first. Paths
// ending with a slash point at the directory's index file. Any ".." in the resulting
// path is rejected, even if it is a part of a name rather than a separate segment.
func (r *Resolver) Path(uri string) (string, error) {
	uri = http.StripQuery(uri)
	if len(uri) == 0 || uri[0] != '/' {
		return "", ErrNotAbsolute
	}

	path := r.root + uri
	if strings.HasSuffix(path, "/") {
		path += index
	}

	if !isSafe(path) {
		return "", ErrPathTraversal
	}

	return filepath.FromSlash(path), nil
}

// Resolve finds and opens the file the request points at. The returned resource must be
// closed by the caller.
func (r *Resolver) Resolve(request *http.Request) (*Resource, error) {
	switch request.Method {
	case method.GET, method.HEAD:
	default:
		return nil, fmt.Errorf("%w: %s", status.ErrMethodNotAllowed, request.Method)
	}

	path, err := r.Path(request.URI)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return nil, fmt.Errorf("%w: %s", status.ErrNotFound, request.Path())
	case err != nil:
		return nil, fmt.Errorf("%w: %w", status.ErrInternalServerError, err)
	case !info.Mode().IsRegular():
		return nil, fmt.Errorf("%w: %s", status.ErrNotFound, request.Path())
	}

	contentType := mime.Lookup(path)
	if r.strict {
		if contentType, err = mime.Strict(path); err != nil {
			return nil, err
		}
	}

	// the file might have been removed since the stat
	file, err := r.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", status.ErrInternalServerError, err)
	}

	return &Resource{
		File: file,
		Size: info.Size(),
		MIME: contentType,
	}, nil
}

// Serve resolves the request and, if succeeded, sends the response header followed by
// the file content. Errors not wrapping ErrTransfer happened before anything was sent,
// so the client may still be answered with an error response.
func (r *Resolver) Serve(client transport.Client, s *http1.Serializer, request *http.Request) (*http.Response, error) {
	resource, err := r.Resolve(request)
	if err != nil {
		return nil, err
	}

	defer resource.Close()

	response := http.NewResponse().
		WithProto(request.Proto.Response()).
		WithContentType(resource.MIME).
		WithContentLength(resource.Size).
		WithHeader("Connection", "close")

	if err = client.Send(s.Render(response, false)); err != nil {
		return response, fmt.Errorf("%w: %w", ErrTransfer, err)
	}

	if request.Method == method.HEAD {
		return response, nil
	}

	if err = client.SendFile(resource.File, resource.Size); err != nil {
		return response, fmt.Errorf("%w: %w", ErrTransfer, err)
	}

	return response, nil
}

func isSafe(path string) bool {
	return !strings.Contains(path, "..")
}
