package analyzer

import (
	"fmt"

	"github.com/mcncl/swiftyper/internal/errors"
	"github.com/mcncl/swiftyper/internal/models"
	"github.com/mcncl/swiftyper/internal/naming"
	"github.com/mcncl/swiftyper/internal/parser"
)

// Analyzer infers a Property tree from a parsed JSON document.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze builds the Property tree for a document root. Only objects and
// arrays can be roots; anything else reports ErrUnsupportedRoot.
func (a *Analyzer) Analyze(root models.JSONValue) (*models.Property, error) {
	switch root.Kind {
	case models.Object:
		return a.NewProperty("", "", root.Members), nil
	case models.Array:
		return a.analyzeArray("", "", root.Array), nil
	default:
		return nil, errors.NewAnalysisError(
			fmt.Sprintf("cannot generate declarations for a bare %s", root.Kind),
			errors.ErrUnsupportedRoot,
		)
	}
}

// NewProperty builds an object Property directly from a key, a name and
// the object's members. It is how a synthetic root is made.
func (a *Analyzer) NewProperty(key, name string, members []models.Member) *models.Property {
	return &models.Property{
		Key:      key,
		Name:     name,
		Kind:     models.ObjectKind,
		Children: a.analyzeMembers(members),
		TypeName: typeNameFor(name),
	}
}

// FromJSON parses text and builds its Property tree. It returns nil when the
// text is malformed or its root is not an object or an array.
func FromJSON(text string) *models.Property {
	root, ok := parser.JSONObject(text)
	if !ok {
		return nil
	}
	property, err := NewAnalyzer().Analyze(root)
	if err != nil {
		return nil
	}
	return property
}

// analyzeMembers converts object members to children in document order.
// Identifiers are unique among siblings.
func (a *Analyzer) analyzeMembers(members []models.Member) []*models.Property {
	scope := naming.NewScope()
	children := make([]*models.Property, 0, len(members))
	for _, m := range members {
		name := scope.Unique(naming.Identifier(m.Key))
		children = append(children, a.analyzeNode(m.Key, name, m.Value))
	}
	return children
}

func (a *Analyzer) analyzeNode(key, name string, v models.JSONValue) *models.Property {
	switch v.Kind {
	case models.Object:
		return a.NewProperty(key, name, v.Members)
	case models.Array:
		return a.analyzeArray(key, name, v.Array)
	default:
		valueType, _ := Classify(v)
		return &models.Property{
			Key:   key,
			Name:  name,
			Kind:  models.Scalar,
			Value: valueType,
		}
	}
}

// analyzeArray infers an array property. When objects are present only the
// first object element is inspected; keys that appear only in later
// elements are not discovered.
func (a *Analyzer) analyzeArray(key, name string, elements []models.JSONValue) *models.Property {
	if len(elements) == 0 {
		return &models.Property{
			Key:   key,
			Name:  name,
			Kind:  models.EmptyArray,
			Value: models.AnyType,
		}
	}

	for _, element := range elements {
		if element.Kind == models.Object {
			return &models.Property{
				Key:      key,
				Name:     name,
				Kind:     models.ArrayOfObject,
				Children: a.analyzeMembers(element.Members),
				TypeName: typeNameFor(name),
			}
		}
	}

	return &models.Property{
		Key:   key,
		Name:  name,
		Kind:  models.ArrayOfScalar,
		Value: elementType(elements),
	}
}

// elementType infers the element type of an array holding no objects.
// Nested arrays become "[T]" element types.
func elementType(elements []models.JSONValue) models.ValueType {
	types := make([]models.ValueType, 0, len(elements))
	for _, element := range elements {
		switch element.Kind {
		case models.Object:
			return models.ValueType{TypeName: "[String: Any]", DefaultLiteral: "[:]"}
		case models.Array:
			inner := models.AnyType
			if len(element.Array) > 0 {
				inner = elementType(element.Array)
			}
			types = append(types, models.ValueType{TypeName: "[" + inner.TypeName + "]", DefaultLiteral: "[]"})
		default:
			valueType, _ := Classify(element)
			types = append(types, valueType)
		}
	}
	return commonElementType(types)
}

func typeNameFor(name string) string {
	if name == "" {
		return ""
	}
	return naming.TypeName(name)
}
