package pathaddr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointerToken escapes one reference token for use in a JSON Pointer.
func EscapePointerToken(token string) string {
	return pointerEscaper.Replace(token)
}

// Pointer renders p as a JSON Pointer. The root is "".
func (p Path) Pointer() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		if seg.Kind == IndexSegment {
			b.WriteString(strconv.Itoa(seg.Index))
			continue
		}
		b.WriteString(EscapePointerToken(seg.Key))
	}
	return b.String()
}

// FromPointer converts a JSON Pointer back to a typed path. A pointer does not
// say whether "0" is a key or an index, so root is walked to decide: tokens
// applied to arrays become indices, tokens applied to objects stay keys.
func FromPointer(pointer string, root models.JSONValue) (Path, error) {
	if pointer == "" {
		return Root(), nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, errors.NewMalformedPathError(fmt.Sprintf("JSON pointer %q must start with '/'", pointer))
	}

	tokens := strings.Split(pointer[1:], "/")
	path := make(Path, 0, len(tokens))
	current := root
	for _, raw := range tokens {
		token := pointerUnescaper.Replace(raw)
		var seg Segment
		switch node := current.(type) {
		case models.JSONArray:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || strings.Trim(token, "0123456789") != "" {
				return nil, errors.NewPathNotFoundError(
					fmt.Sprintf("token %q does not index the array at %s", token, path),
				)
			}
			seg = Index(index)
		case *models.JSONObject:
			seg = Key(token)
		default:
			return nil, errors.NewPathNotFoundError(
				fmt.Sprintf("cannot descend into %s at %s", describe(node), path),
			)
		}
		next, err := step(current, seg, path)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
		current = next
	}
	return path, nil
}
