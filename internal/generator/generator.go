package generator

import (
	"bytes"
	"fmt"

	"github.com/mcncl/swiftyper/internal/analyzer"
	"github.com/mcncl/swiftyper/internal/config"
	"github.com/mcncl/swiftyper/internal/models"
	"github.com/mcncl/swiftyper/internal/naming"
)

// Generator renders a Property tree as Swift declarations. It holds only
// immutable values, so one Generator may be shared between goroutines.
type Generator struct {
	config config.Configuration
	indent config.Indent
}

// NewGenerator creates a new Generator for a configuration snapshot and an
// indentation unit.
func NewGenerator(cfg config.Configuration, indent config.Indent) *Generator {
	return &Generator{config: cfg, indent: indent}
}

// render carries the per-call state shared by the fragments of one tree.
type render struct {
	*Generator
	// keys maps original keys to their identifiers in the Key struct.
	keys map[string]string
}

func (g *Generator) newRender(root *models.Property) *render {
	r := &render{Generator: g, keys: make(map[string]string)}
	scope := naming.NewScope()
	for _, key := range analyzer.AllKeys(root) {
		r.keys[key] = scope.Unique(naming.Identifier(key))
	}
	return r
}

// PropertyKeys renders the Key struct listing every unique key of the tree
// as a string constant. It is empty when keys are disabled.
func (g *Generator) PropertyKeys(p *models.Property) string {
	if p == nil {
		return ""
	}
	return g.newRender(p).propertyKeys(p, 0)
}

// TypeContent renders a nested type declaration for every object and
// array-of-object descendant of p. The root itself is not declared.
func (g *Generator) TypeContent(p *models.Property) string {
	if p == nil {
		return ""
	}
	return g.newRender(p).typeContent(p, 0)
}

// PropertyContent renders one declaration per direct child of p.
func (g *Generator) PropertyContent(p *models.Property) string {
	if p == nil {
		return ""
	}
	return g.newRender(p).propertyContent(p, 0)
}

// InitContent renders init(dictionary:) and dictionary() for p. It is
// empty when the initializer option is disabled.
func (g *Generator) InitContent(p *models.Property) string {
	if p == nil {
		return ""
	}
	return g.newRender(p).initContent(p, 0)
}

func (r *render) propertyKeys(p *models.Property, level int) string {
	if !r.config.AddKeys {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString("\n")
	buf.WriteString(r.indent.At(level) + "struct Key {\n")
	for _, key := range analyzer.AllKeys(p) {
		fmt.Fprintf(&buf, "%s%s %s = %s\n", r.indent.At(level+1), r.config.Declaration, r.keys[key], swiftString(key))
	}
	buf.WriteString(r.indent.At(level) + "}\n")
	return buf.String()
}

func (r *render) typeContent(p *models.Property, level int) string {
	var buf bytes.Buffer
	for _, child := range p.Children {
		if !child.HasNestedType() {
			continue
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "%sstruct %s {\n", r.indent.At(level), r.config.PendingType.Wrap(child.TypeName))
		buf.WriteString(r.propertyContent(child, level+1))
		buf.WriteString(r.typeContent(child, level+1))
		buf.WriteString(r.initContent(child, level+1))
		buf.WriteString(r.indent.At(level) + "}\n")
	}
	return buf.String()
}

func (r *render) propertyContent(p *models.Property, level int) string {
	var buf bytes.Buffer
	for _, child := range p.Children {
		fmt.Fprintf(&buf, "%s%s %s: %s%s",
			r.indent.At(level),
			r.config.Declaration,
			child.Name,
			r.typeOf(child),
			r.config.Unwrapping.Suffix())
		if r.config.AddDefaultValue {
			buf.WriteString(" = " + defaultOf(child))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// typeOf returns the declared type of p without the unwrap marker.
func (r *render) typeOf(p *models.Property) string {
	switch p.Kind {
	case models.ObjectKind:
		return r.config.PendingType.Wrap(p.TypeName)
	case models.ArrayOfObject:
		return "[" + r.config.PendingType.Wrap(p.TypeName) + "]"
	case models.ArrayOfScalar:
		return "[" + p.Value.TypeName + "]"
	case models.EmptyArray:
		return "[Any]"
	default:
		return p.Value.TypeName
	}
}

func defaultOf(p *models.Property) string {
	switch p.Kind {
	case models.ObjectKind:
		return "[:]"
	case models.ArrayOfObject, models.ArrayOfScalar, models.EmptyArray:
		return "[]"
	default:
		return p.Value.DefaultLiteral
	}
}
