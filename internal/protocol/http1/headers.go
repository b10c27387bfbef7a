package http1

import (
	"fmt"

	"github.com/indigo-web/statica/http/headers"
)

type headersTransition func(p *headersParser, c byte) error

var headersTransitions = [...]headersTransition{
	eHeaderName:             (*headersParser).name,
	eColon:                  (*headersParser).colon,
	eSpacesAfterColon:       (*headersParser).spacesAfterColon,
	eHeaderValue:            (*headersParser).value,
	eSpacesAfterHeaderValue: (*headersParser).spacesAfterValue,
	eHeaderLF:               (*headersParser).lf,
}

// headersParser walks the header block, which spans from the first byte after the
// request line CRLF up to (not including) the CRLFCRLF. Therefore, the last header
// line comes without its CRLF and is committed when the input runs out.
type headersParser struct {
	headers headers.Headers
	key     []byte
	val     []byte
	// pending holds spaces and tabs met inside the value. They're appended to it
	// only if something else follows, otherwise they are trailing and get dropped.
	pending []byte
	state   headersState
}

func parseHeaders(into headers.Headers, block []byte) error {
	p := headersParser{
		headers: into,
		state:   eHeaderName,
	}

	for _, c := range block {
		if err := headersTransitions[p.state](&p, c); err != nil {
			return err
		}
	}

	return p.finish()
}

func (p *headersParser) name(c byte) error {
	switch {
	case isSpaceOrTab(c):
		return fmt.Errorf("%w: whitespace before colon in %q", ErrInvalidHeaderName, p.key)
	case c == '\r' || c == '\n':
		return fmt.Errorf("%w: %q has no colon", ErrInvalidHeaderName, p.key)
	case c == ':':
		if len(p.key) == 0 {
			return fmt.Errorf("%w: empty header name", ErrInvalidHeaderName)
		}

		p.state = eColon
		return nil
	}

	p.key = append(p.key, toLower(c))
	return nil
}

func (p *headersParser) colon(c byte) error {
	if isSpaceOrTab(c) {
		p.state = eSpacesAfterColon
		return nil
	}

	p.state = eHeaderValue
	return p.value(c)
}

func (p *headersParser) spacesAfterColon(c byte) error {
	if isSpaceOrTab(c) {
		return nil
	}

	p.state = eHeaderValue
	return p.value(c)
}

func (p *headersParser) value(c byte) error {
	switch {
	case isSpaceOrTab(c):
		p.pending = append(p.pending[:0], c)
		p.state = eSpacesAfterHeaderValue
	case c == '\r':
		p.commit()
		p.state = eHeaderLF
	default:
		p.val = append(p.val, c)
	}

	return nil
}

func (p *headersParser) spacesAfterValue(c byte) error {
	switch {
	case isSpaceOrTab(c):
		p.pending = append(p.pending, c)
	case c == '\r':
		p.commit()
		p.state = eHeaderLF
	default:
		p.val = append(append(p.val, p.pending...), c)
		p.state = eHeaderValue
	}

	return nil
}

func (p *headersParser) lf(c byte) error {
	if c != '\n' {
		return fmt.Errorf("%w: CR must be followed by LF", ErrMalformedHeaderLine)
	}

	p.state = eHeaderName
	return nil
}

func (p *headersParser) finish() error {
	switch p.state {
	case eHeaderName:
		if len(p.key) > 0 {
			return fmt.Errorf("%w: %q has no colon", ErrInvalidHeaderName, p.key)
		}
	case eHeaderLF:
	default:
		p.commit()
	}

	return nil
}

// commit stores the header. Repeated names override earlier values.
func (p *headersParser) commit() {
	p.headers[string(p.key)] = string(p.val)
	p.key = p.key[:0]
	p.val = p.val[:0]
	p.pending = p.pending[:0]
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}
