package pathaddr

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
)

// Parse tokenizes path text into typed segments.
//
// Accepted forms, freely mixed: a leading $ for the root, .key, [index],
// ["quoted key"] with JSON escapes and ['quoted key']. Without a leading $
// the first key may appear bare, as in user.tags[2]. Bracketed numbers are
// always indices and quoted keys are always keys, so "0" as an object key
// and 0 as an array index never collide.
func Parse(text string) (Path, error) {
	p := &pathParser{text: text}
	return p.parse()
}

type pathParser struct {
	text string
	pos  int
}

func (p *pathParser) parse() (Path, error) {
	path := Path{}
	if p.rootMarker() {
		p.pos = 1
	} else if p.pos < len(p.text) && p.text[0] != '.' && p.text[0] != '[' {
		key, err := p.bareKey()
		if err != nil {
			return nil, err
		}
		path = append(path, Key(key))
	}

	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '.':
			p.pos++
			key, err := p.bareKey()
			if err != nil {
				return nil, err
			}
			path = append(path, Key(key))
		case '[':
			seg, err := p.bracket()
			if err != nil {
				return nil, err
			}
			path = append(path, seg)
		case ']':
			return nil, p.errorf("unbalanced ']'")
		default:
			return nil, p.errorf("unexpected character %q", p.text[p.pos])
		}
	}
	return path, nil
}

// rootMarker reports whether the text starts with a $ that stands for the
// root rather than being the first character of a key such as $ref.
func (p *pathParser) rootMarker() bool {
	if !strings.HasPrefix(p.text, "$") {
		return false
	}
	if len(p.text) == 1 {
		return true
	}
	next := p.text[1]
	return next == '.' || next == '['
}

// bareKey reads a key up to the next '.' or '['.
func (p *pathParser) bareKey() (string, error) {
	start := p.pos
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		if c == '.' || c == '[' {
			break
		}
		if c == ']' {
			return "", p.errorf("unbalanced ']'")
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("empty key")
	}
	return p.text[start:p.pos], nil
}

// bracket reads [123], ["key"] or ['key'] starting at '['.
func (p *pathParser) bracket() (Segment, error) {
	open := p.pos
	p.pos++
	if p.pos >= len(p.text) {
		return Segment{}, p.errorAt(open, "unbalanced '['")
	}

	switch p.text[p.pos] {
	case '"':
		key, err := p.doubleQuoted()
		if err != nil {
			return Segment{}, err
		}
		return Key(key), p.closeBracket(open)
	case '\'':
		key, err := p.singleQuoted()
		if err != nil {
			return Segment{}, err
		}
		return Key(key), p.closeBracket(open)
	}

	end := strings.IndexByte(p.text[p.pos:], ']')
	if end < 0 {
		return Segment{}, p.errorAt(open, "unbalanced '['")
	}
	literal := p.text[p.pos : p.pos+end]
	if literal == "" || strings.Trim(literal, "0123456789") != "" {
		return Segment{}, p.errorAt(open, fmt.Sprintf("index %q is not a non-negative integer", literal))
	}
	index, err := strconv.Atoi(literal)
	if err != nil {
		return Segment{}, p.errorAt(open, fmt.Sprintf("index %q is out of range", literal))
	}
	p.pos += end + 1
	return Index(index), nil
}

func (p *pathParser) doubleQuoted() (string, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.text) {
		switch p.text[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			var key string
			if err := json.Unmarshal([]byte(p.text[start:p.pos]), &key); err != nil {
				return "", p.errorAt(start, fmt.Sprintf("invalid quoted key: %v", err))
			}
			return key, nil
		}
		p.pos++
	}
	return "", p.errorAt(start, "unterminated quoted key")
}

func (p *pathParser) singleQuoted() (string, error) {
	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.text):
			b.WriteByte(p.text[p.pos+1])
			p.pos += 2
			continue
		case c == '\'':
			p.pos++
			return b.String(), nil
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", p.errorAt(start, "unterminated quoted key")
}

func (p *pathParser) closeBracket(open int) error {
	if p.pos >= len(p.text) || p.text[p.pos] != ']' {
		return p.errorAt(open, "unbalanced '['")
	}
	p.pos++
	return nil
}

func (p *pathParser) errorf(msg string, args ...any) error {
	return p.errorAt(p.pos, fmt.Sprintf(msg, args...))
}

func (p *pathParser) errorAt(offset int, msg string) error {
	return errors.NewMalformedPathError(fmt.Sprintf("%s at offset %d in %q", msg, offset, p.text))
}
