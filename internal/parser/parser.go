// Package parser decodes JSON text into the ordered value model.
package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
)

// Parse reads all of reader and decodes it with ParseBytes.
func Parse(reader io.Reader) (models.JSONValue, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a single JSON document. Object members keep their source
// order and numbers are kept as json.Number so their literal text survives.
// Input must be valid UTF-8: keys and strings are used verbatim in paths.
func ParseBytes(data []byte) (models.JSONValue, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if !utf8.Valid(data) {
		return nil, errors.NewParsingError("input is not valid UTF-8", errors.ErrInvalidJSON)
	}

	iter := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	root := readValue(iter)
	if iter.Error != nil && !stderrors.Is(iter.Error, io.EOF) {
		return nil, errors.NewParsingError(
			fmt.Sprintf("JSON syntax error: %v", iter.Error),
			errors.ErrInvalidJSON,
		)
	}

	// Anything but whitespace after the first value is either a second
	// document or garbage.
	if iter.Error == nil {
		if iter.WhatIsNext() != jsoniter.InvalidValue {
			return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
	}

	if !json.Valid(data) {
		return nil, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}
	return root, nil
}

// readValue walks one value with the streaming iterator.
func readValue(iter *jsoniter.Iterator) models.JSONValue {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		num := iter.ReadNumber()
		if iter.Error == nil || stderrors.Is(iter.Error, io.EOF) {
			if !jsontext.ValidNumber(string(num)) {
				iter.ReportError("readValue", fmt.Sprintf("invalid number literal %q", string(num)))
			}
		}
		return num
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.ArrayValue:
		arr := models.JSONArray{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr = append(arr, readValue(it))
			return it.Error == nil
		})
		return arr
	case jsoniter.ObjectValue:
		obj := models.NewObject(0)
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readValue(it))
			return it.Error == nil
		})
		return obj
	default:
		iter.ReportError("readValue", "expected a JSON value")
		return nil
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.JSONValue, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data)
}
