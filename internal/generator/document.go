package generator

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/mcncl/swiftyper/internal/models"
)

// Fragment names one of the independently renderable pieces of output.
type Fragment string

const (
	FragmentAll        Fragment = "all"
	FragmentKeys       Fragment = "keys"
	FragmentTypes      Fragment = "types"
	FragmentProperties Fragment = "properties"
	FragmentInit       Fragment = "init"
)

// ParseFragment validates a fragment name; empty means all.
func ParseFragment(s string) (Fragment, error) {
	switch f := Fragment(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FragmentAll, nil
	case FragmentAll, FragmentKeys, FragmentTypes, FragmentProperties, FragmentInit:
		return f, nil
	default:
		return "", fmt.Errorf("unknown fragment %q (want all, keys, types, properties or init)", s)
	}
}

// Render returns a single fragment for p, or the whole document for
// FragmentAll.
func (g *Generator) Render(p *models.Property, fragment Fragment, rootName, header string) string {
	switch fragment {
	case FragmentKeys:
		return g.PropertyKeys(p)
	case FragmentTypes:
		return g.TypeContent(p)
	case FragmentProperties:
		return g.PropertyContent(p)
	case FragmentInit:
		return g.InitContent(p)
	default:
		return g.GenerateDocument(p, rootName, header)
	}
}

// GenerateDocument wraps every fragment in a root struct named rootName.
// Roots that are arrays of scalars become a typealias instead.
func (g *Generator) GenerateDocument(p *models.Property, rootName, header string) string {
	if p == nil {
		return ""
	}
	r := g.newRender(p)

	var buf bytes.Buffer
	if header != "" {
		buf.WriteString(strings.TrimRight(header, "\n") + "\n\n")
	}

	switch p.Kind {
	case models.ArrayOfScalar, models.EmptyArray:
		fmt.Fprintf(&buf, "typealias %s = %s\n", rootName, r.typeOf(p))
		return buf.String()
	case models.ArrayOfObject:
		fmt.Fprintf(&buf, "// The JSON root is an array; decode it as [%s].\n", rootName)
	}

	fmt.Fprintf(&buf, "struct %s {\n", rootName)
	buf.WriteString(r.propertyKeys(p, 1))
	buf.WriteString(r.typeContent(p, 1))
	buf.WriteString("\n")
	buf.WriteString(r.propertyContent(p, 1))
	buf.WriteString(r.initContent(p, 1))
	buf.WriteString("}\n")

	return buf.String()
}

// swiftString quotes s as a Swift string literal.
func swiftString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\u{%X}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
