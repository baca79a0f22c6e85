package pathaddr

import (
	"fmt"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// Resolve returns the value at path inside root.
func Resolve(path Path, root models.JSONValue) (models.JSONValue, error) {
	current := root
	for i, seg := range path {
		next, err := step(current, seg, path[:i])
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// Write assigns value at path inside root, mutating root in place. Callers
// that must keep root intact should pass a copy or use Set.
//
// A key segment on an object adds the member when it does not exist yet. An
// index segment must address an existing element. The empty path has no
// parent container to assign into and fails with errors.ErrRootWrite.
func Write(path Path, root models.JSONValue, value models.JSONValue) error {
	parentPath, last, ok := path.Parent()
	if !ok {
		return errors.NewRootWriteError()
	}
	parent, err := Resolve(parentPath, root)
	if err != nil {
		return err
	}

	switch last.Kind {
	case KeySegment:
		obj, isObject := parent.(*models.JSONObject)
		if !isObject || obj == nil {
			return errors.NewPathNotFoundError(
				fmt.Sprintf("cannot set member %q on %s at %s", last.Key, describe(parent), parentPath),
			)
		}
		obj.Set(last.Key, value)
	case IndexSegment:
		arr, isArray := parent.(models.JSONArray)
		if !isArray {
			return errors.NewPathNotFoundError(
				fmt.Sprintf("cannot set element %d on %s at %s", last.Index, describe(parent), parentPath),
			)
		}
		if last.Index < 0 || last.Index >= len(arr) {
			return errors.NewPathNotFoundError(
				fmt.Sprintf("index %d out of range (length %d) at %s", last.Index, len(arr), parentPath),
			)
		}
		arr[last.Index] = value
	}
	return nil
}

// Set returns a copy of root with value written at path; root is left untouched.
// Setting the root path replaces the whole document with a copy of value.
func Set(path Path, root models.JSONValue, value models.JSONValue) (models.JSONValue, error) {
	if path.IsRoot() {
		return models.Clone(value), nil
	}
	out := models.Clone(root)
	if err := Write(path, out, models.Clone(value)); err != nil {
		return nil, err
	}
	return out, nil
}

func step(node models.JSONValue, seg Segment, at Path) (models.JSONValue, error) {
	switch seg.Kind {
	case KeySegment:
		obj, ok := node.(*models.JSONObject)
		if !ok || obj == nil {
			return nil, errors.NewPathNotFoundError(
				fmt.Sprintf("cannot read member %q of %s at %s", seg.Key, describe(node), at),
			)
		}
		v, found := obj.Get(seg.Key)
		if !found {
			return nil, errors.NewPathNotFoundError(fmt.Sprintf("no member %q at %s", seg.Key, at))
		}
		return v, nil
	case IndexSegment:
		arr, ok := node.(models.JSONArray)
		if !ok {
			return nil, errors.NewPathNotFoundError(
				fmt.Sprintf("cannot read element %d of %s at %s", seg.Index, describe(node), at),
			)
		}
		if seg.Index < 0 || seg.Index >= len(arr) {
			return nil, errors.NewPathNotFoundError(
				fmt.Sprintf("index %d out of range (length %d) at %s", seg.Index, len(arr), at),
			)
		}
		return arr[seg.Index], nil
	}
	return nil, errors.NewPathNotFoundError(fmt.Sprintf("unknown segment at %s", at))
}

func describe(node models.JSONValue) string {
	switch node.(type) {
	case nil:
		return "null"
	case *models.JSONObject:
		return "an object"
	case models.JSONArray:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
