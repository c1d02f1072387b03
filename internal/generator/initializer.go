package generator

import (
	"bytes"
	"fmt"

	"github.com/mcncl/swiftyper/internal/models"
)

func (r *render) initContent(p *models.Property, level int) string {
	if !r.config.AddInitAndDictionary {
		return ""
	}

	outer := r.indent.At(level)
	inner := r.indent.At(level + 1)

	var buf bytes.Buffer
	buf.WriteString("\n")
	buf.WriteString(outer + "init(dictionary: [String: Any]) {\n")
	if r.config.AddKeys && len(p.Children) > 0 {
		buf.WriteString(inner + "let keys = Key()\n")
	}
	for _, child := range p.Children {
		fmt.Fprintf(&buf, "%sself.%s = %s\n", inner, child.Name, r.extract(child))
	}
	buf.WriteString(outer + "}\n")

	buf.WriteString("\n")
	buf.WriteString(outer + "func dictionary() -> [String: Any] {\n")
	if r.config.AddKeys && len(p.Children) > 0 {
		buf.WriteString(inner + "let keys = Key()\n")
	}
	buf.WriteString(inner + "var result = [String: Any]()\n")
	for _, child := range p.Children {
		fmt.Fprintf(&buf, "%sresult[%s] = %s\n", inner, r.keyRef(child), serialize(child))
	}
	buf.WriteString(inner + "return result\n")
	buf.WriteString(outer + "}\n")

	return buf.String()
}

// keyRef is the expression used to index the raw dictionary for p.
func (r *render) keyRef(p *models.Property) string {
	if r.config.AddKeys {
		if name, ok := r.keys[p.Key]; ok {
			return "keys." + name
		}
	}
	return swiftString(p.Key)
}

// extract reads p out of the raw dictionary with the same type rules as
// its declaration.
func (r *render) extract(p *models.Property) string {
	lookup := "dictionary[" + r.keyRef(p) + "]"

	switch p.Kind {
	case models.ObjectKind:
		return fmt.Sprintf("(%s as? [String: Any]).map { %s(dictionary: $0) }",
			lookup, r.config.PendingType.Wrap(p.TypeName))
	case models.ArrayOfObject:
		return fmt.Sprintf("(%s as? [[String: Any]])?.map { %s(dictionary: $0) }",
			lookup, r.config.PendingType.Wrap(p.TypeName))
	}

	if p.Kind == models.Scalar && p.Value == models.AnyType {
		// Any needs no cast and has no useful default.
		return lookup
	}
	expr := lookup + " as? " + r.typeOf(p)
	if r.config.AddDefaultValue {
		expr += " ?? " + defaultOf(p)
	}
	return expr
}

// serialize converts p back into a dictionary value.
func serialize(p *models.Property) string {
	switch p.Kind {
	case models.ObjectKind:
		return "self." + p.Name + "?.dictionary()"
	case models.ArrayOfObject:
		return "self." + p.Name + "?.map { $0.dictionary() }"
	default:
		return "self." + p.Name
	}
}
