// Package edit turns text typed for a leaf node into a JSON value of the
// node's type and writes it back by path.
package edit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

// EditableText returns the text shown when editing value. Only leaves are
// editable; containers report false.
func EditableText(value models.JSONValue) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "null", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return string(v), true
	case float64:
		return formatter.FormatFloat(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return "", false
	}
}

// Convert interprets input according to the type of current:
//   - strings take the input verbatim
//   - numbers require a finite number
//   - booleans accept "true" or "false" in any case
//   - null becomes null for "null", the parsed value when input is JSON,
//     and the raw input as a string otherwise
func Convert(current models.JSONValue, input string) (models.JSONValue, error) {
	switch current.(type) {
	case nil:
		if input == "null" {
			return nil, nil
		}
		if parsed, err := parser.ParseString(input); err == nil {
			return parsed, nil
		}
		return input, nil
	case string:
		return input, nil
	case json.Number, float64, int, int64:
		return convertNumber(input)
	case bool:
		switch strings.ToLower(input) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, errors.NewEditError(fmt.Sprintf("%q is not a boolean", input), errors.ErrInvalidEdit)
	default:
		return nil, errors.NewEditError("only strings, numbers, booleans and null can be edited", errors.ErrInvalidEdit)
	}
}

func convertNumber(input string) (models.JSONValue, error) {
	text := strings.TrimSpace(input)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.NewEditError(fmt.Sprintf("%q is not a finite number", input), errors.ErrInvalidEdit)
	}
	if jsontext.ValidNumber(text) {
		return json.Number(text), nil
	}
	// Forms like "+1" or ".5" parse but are not JSON; store the canonical literal.
	return json.Number(formatter.FormatFloat(f)), nil
}

// Apply converts input for the node at path and returns a new tree holding
// the converted value. root is not modified.
func Apply(root models.JSONValue, path pathaddr.Path, input string) (models.JSONValue, error) {
	current, err := pathaddr.Resolve(path, root)
	if err != nil {
		return nil, err
	}
	if _, ok := EditableText(current); !ok {
		return nil, errors.NewEditError(fmt.Sprintf("value at %s is not editable", path), errors.ErrInvalidEdit)
	}
	value, err := Convert(current, input)
	if err != nil {
		return nil, err
	}
	return pathaddr.Set(path, root, value)
}
