// Package pathaddr addresses nodes inside a JSON value with paths such as
// $.user.tags[2] and reads or writes the value found there.
package pathaddr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/jsontext"
)

// SegmentKind tells a member access from an element access.
type SegmentKind int

const (
	KeySegment SegmentKind = iota
	IndexSegment
)

// Segment is one step of a Path. Key is set for KeySegment, Index for IndexSegment.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Key returns a member access segment.
func Key(k string) Segment {
	return Segment{Kind: KeySegment, Key: k}
}

// Index returns an element access segment.
func Index(i int) Segment {
	return Segment{Kind: IndexSegment, Index: i}
}

func (s Segment) String() string {
	if s.Kind == IndexSegment {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if identRegex.MatchString(s.Key) {
		return "." + s.Key
	}
	return "[" + jsontext.Quote(s.Key) + "]"
}

// Path is an ordered list of segments applied from the root. The empty path is the root.
type Path []Segment

var identRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Append returns a new path with segs added. p itself is never modified, so
// sibling paths built from the same parent do not share a backing array.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, len(p), len(p)+len(segs))
	copy(out, p)
	return append(out, segs...)
}

// Parent returns the path without its last segment and the last segment.
func (p Path) Parent() (Path, Segment, bool) {
	if len(p) == 0 {
		return nil, Segment{}, false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

// Equal reports whether two paths have the same segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the canonical form: $ followed by .key, ["key"] or [index].
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range p {
		b.WriteString(seg.String())
	}
	return b.String()
}

// MustParse is like Parse but panics on malformed input. It is meant for
// tests and for path literals known at compile time.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("pathaddr: %v", err))
	}
	return p
}
