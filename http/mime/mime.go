package mime

import (
	"errors"
	"path/filepath"
	"strings"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JAVASCRIPT  MIME = "application/javascript"
	JSON        MIME = "application/json"
	XML         MIME = "text/xml"
	PDF         MIME = "application/pdf"
	PHP         MIME = "application/x-php"
	WASM        MIME = "application/wasm"
	ZIP         MIME = "application/zip"
	GZIP        MIME = "application/gzip"
	PNG         MIME = "image/png"
	JPEG        MIME = "image/jpeg"
	GIF         MIME = "image/gif"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/vnd.microsoft.icon"
	WEBP        MIME = "image/webp"
	AVIF        MIME = "image/avif"
)

var Extension = map[string]MIME{
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".js":   JAVASCRIPT,
	".mjs":  JAVASCRIPT,
	".json": JSON,
	".xml":  XML,
	".txt":  Plain,
	".pdf":  PDF,
	".php":  PHP,
	".wasm": WASM,
	".zip":  ZIP,
	".gz":   GZIP,
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".svg":  SVG,
	".ico":  ICO,
	".webp": WEBP,
	".avif": AVIF,
}

var ErrUnknownExtension = errors.New("no MIME type known for the file extension")

// Strict looks the file extension up, failing if the table has no entry for it.
func Strict(path string) (MIME, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, found := Extension[ext]; found {
		return mime, nil
	}

	return "", ErrUnknownExtension
}

// Lookup is Strict falling back to OctetStream.
func Lookup(path string) MIME {
	mime, err := Strict(path)
	if err != nil {
		return OctetStream
	}

	return mime
}
