// Package formatter pretty-prints JSON values and records where every node
// ends up in the output text.
package formatter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

const (
	// DefaultIndent is the number of spaces per nesting level.
	DefaultIndent = 2
	// MaxIndent caps the indent the same way JSON.stringify caps its space argument.
	MaxIndent = 10
)

// SourceMap is serialized text plus the position of every node in it.
type SourceMap struct {
	Text string
	// Pointers maps the JSON Pointer of every node (root is "") to its span.
	Pointers map[string]models.PositionSpan
	// Lines maps a 1-based line number to the pointer of the last value starting on it.
	Lines map[int]string
	// Diagnostics collects values that could not be represented and were written as null.
	Diagnostics []error
}

// Lookup returns the span recorded for pointer.
func (m *SourceMap) Lookup(pointer string) (models.PositionSpan, bool) {
	span, ok := m.Pointers[pointer]
	return span, ok
}

// PointerAtLine returns the pointer of the value starting on line (1-based).
func (m *SourceMap) PointerAtLine(line int) (string, bool) {
	ptr, ok := m.Lines[line]
	return ptr, ok
}

// Selection returns the text range to highlight for pointer: from the key
// when the node is an object member, otherwise from the value, to the value end.
func (m *SourceMap) Selection(pointer string) (int, int, bool) {
	span, ok := m.Pointers[pointer]
	if !ok {
		return 0, 0, false
	}
	if span.HasKey {
		return span.KeyStart, span.End, true
	}
	return span.Start, span.End, true
}

// Formatter serializes values the way JSON.stringify(value, null, Indent) does.
type Formatter struct {
	// Indent is the number of spaces per level. Zero or less gives compact
	// output and values above MaxIndent are treated as MaxIndent.
	Indent int
}

// NewFormatter creates a new Formatter with the default indent.
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// Serialize is a shorthand for (&Formatter{Indent: indent}).Serialize(value).
func Serialize(value models.JSONValue, indent int) *SourceMap {
	f := &Formatter{Indent: indent}
	return f.Serialize(value)
}

// Serialize renders value and its source map. Output is deterministic: object
// members are written in insertion order. Offsets are UTF-16 code units so
// they match what browser editors count.
func (f *Formatter) Serialize(value models.JSONValue) *SourceMap {
	w := &writer{
		indent: min(f.Indent, MaxIndent),
		line:   1,
		m: &SourceMap{
			Pointers: make(map[string]models.PositionSpan),
			Lines:    make(map[int]string),
		},
	}
	w.value(value, "", 0, models.PositionSpan{})
	w.m.Text = w.b.String()
	return w.m
}

type writer struct {
	b      strings.Builder
	indent int
	pos    int
	line   int
	m      *SourceMap
}

func (w *writer) write(s string) {
	w.b.WriteString(s)
	w.pos += utf16Len(s)
	w.line += strings.Count(s, "\n")
}

func (w *writer) newline(depth int) {
	if w.indent <= 0 {
		return
	}
	w.write("\n" + strings.Repeat(" ", w.indent*depth))
}

// value writes v. span arrives with the key fields filled in for object members.
func (w *writer) value(v models.JSONValue, pointer string, depth int, span models.PositionSpan) {
	span.Start = w.pos
	span.Line = w.line
	w.m.Lines[w.line] = pointer

	switch node := v.(type) {
	case *models.JSONObject:
		if node == nil {
			w.write("null")
			break
		}
		w.object(node, pointer, depth)
	case models.JSONArray:
		w.array(node, pointer, depth)
	default:
		w.write(w.leaf(v, pointer))
	}

	span.End = w.pos
	w.m.Pointers[pointer] = span
}

func (w *writer) object(obj *models.JSONObject, pointer string, depth int) {
	if obj.Len() == 0 {
		w.write("{}")
		return
	}
	colon := ":"
	if w.indent > 0 {
		colon = ": "
	}
	w.write("{")
	first := true
	obj.Range(func(key string, child models.JSONValue) bool {
		if !first {
			w.write(",")
		}
		first = false
		w.newline(depth + 1)
		member := models.PositionSpan{HasKey: true, KeyStart: w.pos}
		w.write(jsontext.Quote(key))
		member.KeyEnd = w.pos
		w.write(colon)
		w.value(child, pointer+"/"+pathaddr.EscapePointerToken(key), depth+1, member)
		return true
	})
	w.newline(depth)
	w.write("}")
}

func (w *writer) array(arr models.JSONArray, pointer string, depth int) {
	if len(arr) == 0 {
		w.write("[]")
		return
	}
	w.write("[")
	for i, child := range arr {
		if i > 0 {
			w.write(",")
		}
		w.newline(depth + 1)
		w.value(child, pointer+"/"+strconv.Itoa(i), depth+1, models.PositionSpan{})
	}
	w.newline(depth)
	w.write("]")
}

func (w *writer) leaf(v models.JSONValue, pointer string) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case string:
		return jsontext.Quote(x)
	case json.Number:
		if !jsontext.ValidNumber(string(x)) {
			w.diagnose(pointer, fmt.Sprintf("invalid number literal %q", string(x)))
			return "null"
		}
		return string(x)
	case float64:
		return FormatFloat(x)
	case float32:
		return FormatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	default:
		w.diagnose(pointer, fmt.Sprintf("cannot serialize %T", v))
		return "null"
	}
}

func (w *writer) diagnose(pointer, msg string) {
	w.m.Diagnostics = append(w.m.Diagnostics,
		errors.NewSerializationError(fmt.Sprintf("%s at %q", msg, pointer), errors.ErrUnsupportedValue))
}

// FormatFloat follows the ECMAScript Number to String rules: plain decimal
// notation between 1e-7 and 1e21, exponent notation outside, null when not finite.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// utf16Len counts the UTF-16 code units needed for s.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
