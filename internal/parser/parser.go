package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/mcncl/swiftyper/internal/errors" // Custom errors package
	"github.com/mcncl/swiftyper/internal/models"
)

// Parse reads exactly one JSON value from reader. Object members keep
// their document order and duplicate keys are rejected.
func Parse(reader io.Reader) (models.JSONValue, error) {
	dec := jsontext.NewDecoder(reader)

	root, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.JSONValue{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.JSONValue{}, syntaxError(dec, err)
	}

	// Anything other than EOF after the first value is either garbage or a
	// second document.
	if _, err := dec.ReadValue(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return models.JSONValue{}, errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
		}
		return models.JSONValue{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return root, nil
}

func syntaxError(dec *jsontext.Decoder, err error) error {
	var synErr *jsontext.SyntacticError
	if stderrors.As(err, &synErr) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", dec.InputOffset()),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// decodeValue walks the token stream recursively, building the tagged tree.
func decodeValue(dec *jsontext.Decoder) (models.JSONValue, error) {
	switch dec.PeekKind() {
	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return models.JSONValue{}, err
		}
		members := make([]models.Member, 0)
		for dec.PeekKind() != '}' {
			tok, err := dec.ReadToken()
			if err != nil {
				return models.JSONValue{}, err
			}
			// The token is invalidated by the next decoder call.
			key := tok.String()
			value, err := decodeValue(dec)
			if err != nil {
				return models.JSONValue{}, err
			}
			members = append(members, models.Member{Key: key, Value: value})
		}
		if _, err := dec.ReadToken(); err != nil {
			return models.JSONValue{}, err
		}
		return models.ObjectValue(members...), nil

	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return models.JSONValue{}, err
		}
		elements := make([]models.JSONValue, 0)
		for dec.PeekKind() != ']' {
			element, err := decodeValue(dec)
			if err != nil {
				return models.JSONValue{}, err
			}
			elements = append(elements, element)
		}
		if _, err := dec.ReadToken(); err != nil {
			return models.JSONValue{}, err
		}
		return models.ArrayValue(elements...), nil

	case '0':
		// Keep the raw literal; classification depends on its spelling.
		raw, err := dec.ReadValue()
		if err != nil {
			return models.JSONValue{}, err
		}
		return models.NumberValue(string(raw)), nil
	}

	tok, err := dec.ReadToken()
	if err != nil {
		return models.JSONValue{}, err
	}
	switch tok.Kind() {
	case 'n':
		return models.NullValue(), nil
	case 't', 'f':
		return models.BoolValue(tok.Bool()), nil
	case '"':
		return models.StringValue(tok.String()), nil
	default:
		return models.JSONValue{}, fmt.Errorf("unexpected JSON token %v", tok.Kind())
	}
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.JSONValue, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.JSONValue{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// JSONObject parses text and returns the root only when it is an object or
// an array. Malformed text, empty text and bare scalars all yield ok == false.
func JSONObject(text string) (models.JSONValue, bool) {
	root, err := ParseString(text)
	if err != nil || root.IsScalar() {
		return models.JSONValue{}, false
	}
	return root, true
}

// ParseFile parses the JSON file at filePath. Errors carry the path.
func ParseFile(filePath string) (models.JSONValue, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.JSONValue{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.JSONValue{}, errors.WithFile(errors.NewInputError("file not found", errors.ErrFileNotFound), filePath)
		}
		return models.JSONValue{}, errors.WithFile(errors.NewInputError("failed to open file", err), filePath)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.JSONValue{}, errors.WithFile(errors.NewInputError("failed to get file stats", err), filePath)
	}
	if stat.Size() == 0 {
		return models.JSONValue{}, errors.WithFile(errors.NewInputError("input file is empty", errors.ErrFileEmpty), filePath)
	}

	root, err := Parse(file)
	if err != nil {
		return models.JSONValue{}, errors.WithFile(err, filePath)
	}
	return root, nil
}
