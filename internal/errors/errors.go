package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrMultipleJSON     = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrMalformedPath    = errors.New("malformed path")
	ErrPathNotFound     = errors.New("path not found")
	ErrRootWrite        = errors.New("cannot write at the document root")
	ErrUnsupportedValue = errors.New("unsupported value type")
	ErrDepthExceeded    = errors.New("maximum nesting depth exceeded")
	ErrInvalidEdit      = errors.New("value does not match the type of the edited node")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput         ErrorType = "input"
	ErrorTypeParsing       ErrorType = "parsing"
	ErrorTypePath          ErrorType = "path"
	ErrorTypeSerialization ErrorType = "serialization"
	ErrorTypeProjection    ErrorType = "projection"
	ErrorTypeEdit          ErrorType = "edit"
	ErrorTypeConfig        ErrorType = "config"
	ErrorTypeOutput        ErrorType = "output"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(typ ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    typ,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewMalformedPathError reports path text that cannot be tokenized.
func NewMalformedPathError(message string) *AppError {
	return newError(ErrorTypePath, message, ErrMalformedPath)
}

// NewPathNotFoundError reports a well-formed path that does not match a node.
func NewPathNotFoundError(message string) *AppError {
	return newError(ErrorTypePath, message, ErrPathNotFound)
}

// NewRootWriteError reports an attempt to write through the empty path.
func NewRootWriteError() *AppError {
	return newError(ErrorTypePath, "the root has no parent container", ErrRootWrite)
}

// NewSerializationError creates a new error related to serializing a value
func NewSerializationError(message string, err error) *AppError {
	return newError(ErrorTypeSerialization, message, err)
}

// NewProjectionError creates a new error related to the type projection
func NewProjectionError(message string, err error) *AppError {
	return newError(ErrorTypeProjection, message, err)
}

// NewEditError creates a new error related to editing a node
func NewEditError(message string, err error) *AppError {
	return newError(ErrorTypeEdit, message, err)
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypePath:
			if appErr.Err != nil {
				return fmt.Sprintf("Path error: %s (%v)", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Path error: %s", appErr.Message)
		case ErrorTypeSerialization:
			return fmt.Sprintf("Serialization error: %s", appErr.Message)
		case ErrorTypeProjection:
			return fmt.Sprintf("Type projection error: %s", appErr.Message)
		case ErrorTypeEdit:
			return fmt.Sprintf("Edit error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON value."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrMalformedPath) {
		return "Error: The path could not be parsed. Use a form like $.user.tags[2]."
	}
	if errors.Is(err, ErrPathNotFound) {
		return "Error: Nothing exists at the given path."
	}

	return fmt.Sprintf("Error: %v", err)
}
