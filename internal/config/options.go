package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeclarationKeyword selects between immutable and mutable declarations.
type DeclarationKeyword int

const (
	Immutable DeclarationKeyword = iota
	Mutable
)

// String returns the keyword as written in generated code.
func (d DeclarationKeyword) String() string {
	if d == Mutable {
		return "var"
	}
	return "let"
}

// ParseDeclarationKeyword accepts "let"/"immutable" and "var"/"mutable".
func ParseDeclarationKeyword(s string) (DeclarationKeyword, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "let", "immutable":
		return Immutable, nil
	case "var", "mutable":
		return Mutable, nil
	default:
		return Immutable, fmt.Errorf("unknown declaration keyword %q (want let or var)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *DeclarationKeyword) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDeclarationKeyword(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TypeUnwrapping selects the marker appended to every declared type.
type TypeUnwrapping int

const (
	Forced TypeUnwrapping = iota
	Optional
)

// String returns the setting's name.
func (u TypeUnwrapping) String() string {
	if u == Optional {
		return "optional"
	}
	return "forced"
}

// Suffix returns the unwrap marker written after a type.
func (u TypeUnwrapping) Suffix() string {
	if u == Optional {
		return "?"
	}
	return "!"
}

// ParseTypeUnwrapping accepts "forced"/"!" and "optional"/"?".
func ParseTypeUnwrapping(s string) (TypeUnwrapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forced", "!":
		return Forced, nil
	case "optional", "?":
		return Optional, nil
	default:
		return Forced, fmt.Errorf("unknown type unwrapping %q (want forced or optional)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (u *TypeUnwrapping) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTypeUnwrapping(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Marker brackets a pending type name so editors can spot it as a
// fill-in-the-blank token.
type Marker struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// DefaultMarker is the Xcode placeholder syntax.
var DefaultMarker = Marker{Open: "<#", Close: "#>"}

// Wrap brackets name with the marker.
func (m Marker) Wrap(name string) string {
	return m.Open + name + m.Close
}

// Configuration is an immutable snapshot of the options that affect
// generated code. It is passed by value; the With methods return copies.
type Configuration struct {
	Declaration          DeclarationKeyword
	Unwrapping           TypeUnwrapping
	AddKeys              bool
	AddDefaultValue      bool
	AddInitAndDictionary bool
	PendingType          Marker
}

// DefaultConfiguration returns the out-of-the-box options.
func DefaultConfiguration() Configuration {
	return Configuration{
		Declaration:          Immutable,
		Unwrapping:           Forced,
		AddKeys:              true,
		AddDefaultValue:      false,
		AddInitAndDictionary: true,
		PendingType:          DefaultMarker,
	}
}

// WithDeclaration returns a copy using keyword d.
func (c Configuration) WithDeclaration(d DeclarationKeyword) Configuration {
	c.Declaration = d
	return c
}

// WithUnwrapping returns a copy using unwrapping u.
func (c Configuration) WithUnwrapping(u TypeUnwrapping) Configuration {
	c.Unwrapping = u
	return c
}

// WithKeys returns a copy with the key block switched on or off.
func (c Configuration) WithKeys(enabled bool) Configuration {
	c.AddKeys = enabled
	return c
}

// WithDefaultValues returns a copy with default values switched on or off.
func (c Configuration) WithDefaultValues(enabled bool) Configuration {
	c.AddDefaultValue = enabled
	return c
}

// WithInitAndDictionary returns a copy with the initializer block switched
// on or off.
func (c Configuration) WithInitAndDictionary(enabled bool) Configuration {
	c.AddInitAndDictionary = enabled
	return c
}

// WithPendingType returns a copy using marker m.
func (c Configuration) WithPendingType(m Marker) Configuration {
	c.PendingType = m
	return c
}

// Indent is the indentation unit used when rendering.
type Indent struct {
	UseTabs bool
	Width   int
}

// DefaultIndent is four spaces.
func DefaultIndent() Indent {
	return Indent{UseTabs: false, Width: 4}
}

// Unit returns one level of indentation.
func (i Indent) Unit() string {
	if i.UseTabs {
		return "\t"
	}
	if i.Width <= 0 {
		return ""
	}
	return strings.Repeat(" ", i.Width)
}

// At returns level units of indentation.
func (i Indent) At(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(i.Unit(), level)
}
