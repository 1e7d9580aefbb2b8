package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput        = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON       = errors.New("invalid JSON format")
	ErrMultipleJSON      = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileEmpty         = errors.New("file is empty")
	ErrNoInput           = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrCircularReference = errors.New("circular reference detected")
	ErrMaxDepth          = errors.New("maximum nesting depth exceeded")
	ErrToolNotFound      = errors.New("tool not found")
	ErrMissingParameter  = errors.New("missing required parameter")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput            ErrorType = "input"
	ErrorTypeInvalidJSON      ErrorType = "invalid_json"
	ErrorTypeMissingParameter ErrorType = "missing_parameter"
	ErrorTypeToolNotFound     ErrorType = "tool_not_found"
	ErrorTypeExecution        ErrorType = "execution"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeOutput           ErrorType = "output"
	ErrorTypeUnknown          ErrorType = "unknown"
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

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewInvalidJSONError creates a new error for text that does not parse as JSON
func NewInvalidJSONError(message string, err error) *AppError {
	return newError(ErrorTypeInvalidJSON, message, err)
}

// NewMissingParameterError reports a required option that was absent or empty.
func NewMissingParameterError(param string) *AppError {
	return newError(ErrorTypeMissingParameter, fmt.Sprintf("missing required parameter %q", param), ErrMissingParameter)
}

// NewToolNotFoundError reports an identifier with no registered tool.
func NewToolNotFoundError(id string) *AppError {
	return newError(ErrorTypeToolNotFound, fmt.Sprintf("tool %q is not registered", id), ErrToolNotFound)
}

// NewExecutionError creates a new error raised while a tool runs
func NewExecutionError(message string, err error) *AppError {
	return newError(ErrorTypeExecution, message, err)
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Message returns err's text without the type prefix. Sentinels that only
// restate the message are left out.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	switch {
	case appErr.Err == nil,
		appErr.Err == ErrMissingParameter,
		appErr.Err == ErrToolNotFound:
		return appErr.Message
	case appErr.Message == "":
		return appErr.Err.Error()
	default:
		return appErr.Message + ": " + appErr.Err.Error()
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeInvalidJSON:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeMissingParameter:
			return fmt.Sprintf("Option error: %s", appErr.Message)
		case ErrorTypeToolNotFound:
			return fmt.Sprintf("Unknown tool: %s. Run 'jsonkit list' to see the available tools.", appErr.Message)
		case ErrorTypeExecution:
			return fmt.Sprintf("Tool error: %s", appErr.Message)
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
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
