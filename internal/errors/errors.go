package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by AppError.
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrUnsupportedRoot = errors.New("root JSON value must be an object or an array")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType is the pipeline stage an error came from.
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeAnalysis ErrorType = "analysis"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// labels prefix UserFriendlyError messages.
var labels = map[ErrorType]string{
	ErrorTypeInput:    "Input error",
	ErrorTypeParsing:  "JSON parsing error",
	ErrorTypeAnalysis: "Type analysis error",
	ErrorTypeGenerate: "Code generation error",
	ErrorTypeFormat:   "Code formatting error",
	ErrorTypeOutput:   "Output error",
	ErrorTypeConfig:   "Configuration error",
}

// AppError is a conversion failure tagged with its stage and, when known,
// the input file it concerns.
type AppError struct {
	Type    ErrorType
	Message string
	// File is the JSON input being converted; empty for stdin.
	File string
	Err  error
}

// Error implements error interface
func (e *AppError) Error() string {
	msg := string(e.Type) + ": "
	if e.File != "" {
		msg += e.File + ": "
	}
	msg += e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(typ ErrorType, message string, err error) *AppError {
	return &AppError{Type: typ, Message: message, Err: err}
}

// NewInputError reports a problem reading input.
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError reports malformed JSON.
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewAnalysisError reports JSON that cannot be turned into declarations.
func NewAnalysisError(message string, err error) *AppError {
	return newError(ErrorTypeAnalysis, message, err)
}

// NewGenerateError reports a rendering failure.
func NewGenerateError(message string, err error) *AppError {
	return newError(ErrorTypeGenerate, message, err)
}

// NewFormatError reports a failure normalizing generated Swift.
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError reports a problem writing generated Swift.
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// NewConfigError reports an invalid settings file or flag.
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// WithFile attaches the input file to err. An AppError keeps its stage;
// any other error becomes an input error.
func WithFile(err error, file string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		annotated := *appErr
		annotated.File = file
		return &annotated
	}
	return &AppError{Type: ErrorTypeInput, Message: "conversion failed", File: file, Err: err}
}

// hints explain bare sentinels that reach the user without an AppError.
var hints = []struct {
	err     error
	message string
}{
	{ErrEmptyInput, "Error: The input is empty. Please provide valid JSON data."},
	{ErrInvalidJSON, "Error: The input contains invalid JSON. Please check your JSON syntax."},
	{ErrMultipleJSON, "Error: Multiple JSON values found. Please provide a single JSON object or array."},
	{ErrUnsupportedRoot, "Error: The JSON root is a bare value. Please provide a JSON object or array."},
	{ErrFileNotFound, "Error: The specified file could not be found. Please check the file path."},
	{ErrFileEmpty, "Error: The specified file is empty. Please provide a file with valid JSON content."},
	{ErrNoInput, "Error: No input provided. Please specify a file or pipe JSON data to stdin."},
	{ErrInvalidFilePath, "Error: Invalid file path. Please provide a valid file path."},
}

// UserFriendlyError renders err as a one-line message for the terminal.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		label, ok := labels[appErr.Type]
		if !ok {
			label = "Error"
		}
		if appErr.File != "" {
			return fmt.Sprintf("%s in %s: %s", label, appErr.File, appErr.Message)
		}
		return fmt.Sprintf("%s: %s", label, appErr.Message)
	}

	for _, h := range hints {
		if errors.Is(err, h.err) {
			return h.message
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
