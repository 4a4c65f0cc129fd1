package npz

import (
	"fmt"
	"strconv"
	"strings"
)

// headerInfo holds the three fields every npy header carries.
type headerInfo struct {
	descr   string
	fortran bool
	shape   []int
}

// parseHeader parses the Python dict literal that follows the npy preamble,
// e.g. {'descr': '<i8', 'fortran_order': False, 'shape': (50000, 30), }.
// NumPy writes exactly the keys descr, fortran_order and shape; anything else
// is rejected rather than skipped so corrupt headers fail loudly.
func parseHeader(s string) (headerInfo, error) {
	p := &headerParser{s: s}
	var h headerInfo
	seen := make(map[string]bool, 3)

	if err := p.expect('{'); err != nil {
		return h, err
	}
	for {
		p.skipSpace()
		if p.peek() == '}' {
			p.pos++
			break
		}
		key, err := p.quoted()
		if err != nil {
			return h, err
		}
		if err := p.expect(':'); err != nil {
			return h, err
		}
		if seen[key] {
			return h, fmt.Errorf("%w: duplicate key %q", ErrBadHeader, key)
		}
		seen[key] = true

		switch key {
		case "descr":
			p.skipSpace()
			if c := p.peek(); c != '\'' && c != '"' {
				// Structured dtypes serialize descr as a list, not a string.
				return h, fmt.Errorf("%w: structured descr", ErrUnsupportedDType)
			}
			if h.descr, err = p.quoted(); err != nil {
				return h, err
			}
		case "fortran_order":
			if h.fortran, err = p.boolean(); err != nil {
				return h, err
			}
		case "shape":
			if h.shape, err = p.intTuple(); err != nil {
				return h, err
			}
		default:
			return h, fmt.Errorf("%w: unexpected key %q", ErrBadHeader, key)
		}

		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
		}
	}
	if strings.TrimSpace(p.s[p.pos:]) != "" {
		return h, fmt.Errorf("%w: trailing content", ErrBadHeader)
	}
	if !seen["descr"] || !seen["fortran_order"] || !seen["shape"] {
		return h, fmt.Errorf("%w: missing required key", ErrBadHeader)
	}
	return h, nil
}

// headerParser is a minimal scanner over the header dict text.
type headerParser struct {
	s   string
	pos int
}

func (p *headerParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *headerParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *headerParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("%w: expected %q at offset %d", ErrBadHeader, string(c), p.pos)
	}
	p.pos++
	return nil
}

// quoted parses a single- or double-quoted string. NumPy headers never
// contain escapes, so none are interpreted.
func (p *headerParser) quoted() (string, error) {
	p.skipSpace()
	q := p.peek()
	if q != '\'' && q != '"' {
		return "", fmt.Errorf("%w: expected string at offset %d", ErrBadHeader, p.pos)
	}
	p.pos++
	end := strings.IndexByte(p.s[p.pos:], q)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string", ErrBadHeader)
	}
	v := p.s[p.pos : p.pos+end]
	p.pos += end + 1
	return v, nil
}

func (p *headerParser) boolean() (bool, error) {
	p.skipSpace()
	switch {
	case strings.HasPrefix(p.s[p.pos:], "True"):
		p.pos += len("True")
		return true, nil
	case strings.HasPrefix(p.s[p.pos:], "False"):
		p.pos += len("False")
		return false, nil
	}
	return false, fmt.Errorf("%w: expected True or False at offset %d", ErrBadHeader, p.pos)
}

// intTuple parses a Python tuple of non-negative integers: (), (5,), (3, 4).
func (p *headerParser) intTuple() ([]int, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	dims := []int{}
	for {
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return dims, nil
		}
		start := p.pos
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		if p.pos == start {
			return nil, fmt.Errorf("%w: expected dimension at offset %d", ErrBadHeader, start)
		}
		d, err := strconv.Atoi(p.s[start:p.pos])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
		}
		dims = append(dims, d)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
		}
	}
}
