// Package analyzer infers the structural type of a JSON value.
package analyzer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

// DefaultMaxDepth bounds how deeply nested a value may be before analysis gives up.
const DefaultMaxDepth = 512

// Analyzer infers TypeInfo trees.
type Analyzer struct {
	maxDepth int
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{maxDepth: DefaultMaxDepth}
}

// NewAnalyzerWithConfig creates an Analyzer that honours schema.max_depth.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	a := NewAnalyzer()
	if cfg != nil && cfg.Schema.MaxDepth > 0 {
		a.maxDepth = cfg.Schema.MaxDepth
	}
	return a
}

// Analyze infers the type of value using the default depth limit.
func Analyze(value models.JSONValue) (*models.TypeInfo, error) {
	return NewAnalyzer().Analyze(value)
}

// Analyze infers the type of value. Object fields keep source order. For
// arrays whose first element is an object, that object's shape stands for
// every element; any other array collects its distinct element types in the
// order they were first seen.
func (a *Analyzer) Analyze(value models.JSONValue) (*models.TypeInfo, error) {
	return a.analyzeNode(value, "", 0)
}

func (a *Analyzer) analyzeNode(node models.JSONValue, pointer string, depth int) (*models.TypeInfo, error) {
	if depth > a.maxDepth {
		return nil, errors.NewProjectionError(
			fmt.Sprintf("value at %q is nested deeper than %d levels", pointer, a.maxDepth),
			errors.ErrDepthExceeded,
		)
	}

	switch v := node.(type) {
	case nil:
		return &models.TypeInfo{Kind: models.Null}, nil
	case string:
		return &models.TypeInfo{Kind: models.String}, nil
	case bool:
		return &models.TypeInfo{Kind: models.Bool}, nil
	case json.Number, float64, float32, int, int32, int64, uint, uint64:
		return &models.TypeInfo{Kind: models.Number}, nil
	case *models.JSONObject:
		if v == nil {
			return &models.TypeInfo{Kind: models.Null}, nil
		}
		return a.analyzeObject(v, pointer, depth)
	case models.JSONArray:
		return a.analyzeArray(v, pointer, depth)
	default:
		return &models.TypeInfo{Kind: models.Any}, nil
	}
}

func (a *Analyzer) analyzeObject(obj *models.JSONObject, pointer string, depth int) (*models.TypeInfo, error) {
	info := &models.TypeInfo{Kind: models.Object, Fields: make([]models.FieldInfo, 0, obj.Len())}
	var err error
	obj.Range(func(key string, child models.JSONValue) bool {
		childPointer := pointer + "/" + pathaddr.EscapePointerToken(key)
		var fieldType *models.TypeInfo
		fieldType, err = a.analyzeNode(child, childPointer, depth+1)
		if err != nil {
			return false
		}
		info.Fields = append(info.Fields, models.FieldInfo{Key: key, Pointer: childPointer, Type: fieldType})
		return true
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (a *Analyzer) analyzeArray(arr models.JSONArray, pointer string, depth int) (*models.TypeInfo, error) {
	info := &models.TypeInfo{Kind: models.Array}
	if len(arr) == 0 {
		return info, nil
	}

	if first, ok := arr[0].(*models.JSONObject); ok && first != nil {
		elemPointer := pointer + "/0"
		elemType, err := a.analyzeObject(first, elemPointer, depth+1)
		if err != nil {
			return nil, err
		}
		info.Elements = []models.ElementInfo{{Pointer: elemPointer, Type: elemType}}
		return info, nil
	}

	for i, elem := range arr {
		elemPointer := pointer + "/" + strconv.Itoa(i)
		elemType, err := a.analyzeNode(elem, elemPointer, depth+1)
		if err != nil {
			return nil, err
		}
		if containsType(info.Elements, elemType) {
			continue
		}
		info.Elements = append(info.Elements, models.ElementInfo{Pointer: elemPointer, Type: elemType})
	}
	return info, nil
}

func containsType(elems []models.ElementInfo, t *models.TypeInfo) bool {
	for _, e := range elems {
		if AreTypeInfosEqual(e.Type, t) {
			return true
		}
	}
	return false
}

// AreTypeInfosEqual reports whether two types describe the same shape.
// Pointers are ignored; field order matters because it shows in the output.
func AreTypeInfosEqual(t1, t2 *models.TypeInfo) bool {
	if t1 == nil || t2 == nil {
		return t1 == t2
	}
	if t1.Kind != t2.Kind || len(t1.Fields) != len(t2.Fields) || len(t1.Elements) != len(t2.Elements) {
		return false
	}
	for i := range t1.Fields {
		if t1.Fields[i].Key != t2.Fields[i].Key || !AreTypeInfosEqual(t1.Fields[i].Type, t2.Fields[i].Type) {
			return false
		}
	}
	for i := range t1.Elements {
		if !AreTypeInfosEqual(t1.Elements[i].Type, t2.Elements[i].Type) {
			return false
		}
	}
	return true
}
