package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".swiftyper.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "RootType", cfg.RootName)
	assert.Equal(t, Immutable, cfg.Generation.Declaration)
	assert.Equal(t, Forced, cfg.Generation.TypeUnwrapping)
	assert.True(t, cfg.Generation.AddKeys)
	assert.False(t, cfg.Generation.AddDefaultValue)
	assert.True(t, cfg.Generation.AddInitAndDictionary)
	assert.Equal(t, DefaultMarker, cfg.Generation.PendingType)
	assert.False(t, cfg.Indentation.UseTabs)
	assert.Equal(t, 4, cfg.Indentation.Width)
	assert.Equal(t, "all", cfg.Output.Fragment)
	assert.Equal(t, DefaultConfiguration(), cfg.Snapshot())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
root_name: "Hobbit"
generation:
  declaration: var
  type_unwrapping: optional
  add_keys: false
  add_default_value: true
  pending_type:
    open: "__"
    close: "__"
indentation:
  use_tabs: true
output:
  file_header: "// Generated"
  fragment: properties
logging:
  level: debug
`
	cfg, err := LoadConfig(writeTempConfig(t, yamlContent))
	require.NoError(t, err)

	assert.Equal(t, "Hobbit", cfg.RootName)
	assert.Equal(t, Mutable, cfg.Generation.Declaration)
	assert.Equal(t, Optional, cfg.Generation.TypeUnwrapping)
	assert.False(t, cfg.Generation.AddKeys)
	assert.True(t, cfg.Generation.AddDefaultValue)
	assert.True(t, cfg.Generation.AddInitAndDictionary, "unset keys keep their defaults")
	assert.Equal(t, Marker{Open: "__", Close: "__"}, cfg.Generation.PendingType)
	assert.True(t, cfg.Indentation.UseTabs)
	assert.Equal(t, "// Generated", cfg.Output.FileHeader)
	assert.Equal(t, "properties", cfg.Output.Fragment)
	assert.Equal(t, "debug", cfg.Logging.Level)

	snapshot := cfg.Snapshot()
	assert.Equal(t, "var", snapshot.Declaration.String())
	assert.Equal(t, "?", snapshot.Unwrapping.Suffix())
	assert.Equal(t, "\t", cfg.Indent().Unit())
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
root_name: "Hobbit"
invalid_yaml: [unclosed array
`
	_, err := LoadConfig(writeTempConfig(t, invalidYAML))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadUnknownKeyword(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, "generation:\n  declaration: const\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown declaration keyword")
}

func TestConfig_LoadInvalidRootName(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, "root_name: \"my root\"\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid identifier")
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	configPath := filepath.Join(tmpDir, "project", ".swiftyper.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`root_name: "Found"`), 0o644))

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(nestedDir))

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), `root_name: "Found"`)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir := t.TempDir()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(tmpDir))

	assert.Empty(t, FindConfigFile())
}

func TestParseDeclarationKeyword(t *testing.T) {
	tests := []struct {
		input    string
		expected DeclarationKeyword
		wantErr  bool
	}{
		{input: "let", expected: Immutable},
		{input: "immutable", expected: Immutable},
		{input: "VAR", expected: Mutable},
		{input: " mutable ", expected: Mutable},
		{input: "const", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDeclarationKeyword(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTypeUnwrapping(t *testing.T) {
	tests := []struct {
		input    string
		expected TypeUnwrapping
		wantErr  bool
	}{
		{input: "forced", expected: Forced},
		{input: "!", expected: Forced},
		{input: "Optional", expected: Optional},
		{input: "?", expected: Optional},
		{input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTypeUnwrapping(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfiguration_WithCopies(t *testing.T) {
	base := DefaultConfiguration()
	changed := base.
		WithDeclaration(Mutable).
		WithUnwrapping(Optional).
		WithKeys(false).
		WithDefaultValues(true).
		WithInitAndDictionary(false).
		WithPendingType(Marker{})

	// The original snapshot is untouched
	assert.Equal(t, DefaultConfiguration(), base)

	assert.Equal(t, Mutable, changed.Declaration)
	assert.Equal(t, Optional, changed.Unwrapping)
	assert.False(t, changed.AddKeys)
	assert.True(t, changed.AddDefaultValue)
	assert.False(t, changed.AddInitAndDictionary)
	assert.Equal(t, "Name", changed.PendingType.Wrap("Name"))
}

func TestIndent(t *testing.T) {
	spaces := Indent{UseTabs: false, Width: 2}
	assert.Equal(t, "  ", spaces.Unit())
	assert.Equal(t, "      ", spaces.At(3))
	assert.Equal(t, "", spaces.At(0))

	tabs := Indent{UseTabs: true, Width: 8}
	assert.Equal(t, "\t\t", tabs.At(2))

	assert.Equal(t, "    ", DefaultIndent().Unit())
}

func TestConfig_Apply(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Apply(Overrides{
		RootName:      "Hobbit",
		Declaration:   "var",
		Unwrapping:    "optional",
		NoKeys:        true,
		DefaultValues: true,
		NoInit:        true,
		IndentWidth:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hobbit", cfg.RootName)
	assert.Equal(t, Mutable, cfg.Generation.Declaration)
	assert.Equal(t, Optional, cfg.Generation.TypeUnwrapping)
	assert.False(t, cfg.Generation.AddKeys)
	assert.True(t, cfg.Generation.AddDefaultValue)
	assert.False(t, cfg.Generation.AddInitAndDictionary)
	assert.Equal(t, "  ", cfg.Indent().Unit())
}

func TestConfig_ApplyInvalid(t *testing.T) {
	assert.Error(t, NewConfig().Apply(Overrides{Declaration: "const"}))
	assert.Error(t, NewConfig().Apply(Overrides{Unwrapping: "maybe"}))
	assert.Error(t, NewConfig().Apply(Overrides{RootName: "1Root"}))
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	configYAML := `
root_name: "Response"
generation:
  declaration: var
  add_default_value: true
`
	cfg, err := LoadConfigWithCLI(writeTempConfig(t, configYAML), Overrides{
		RootName:   "APIResult",
		Unwrapping: "optional",
	})
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.Equal(t, "APIResult", cfg.RootName)
	assert.Equal(t, Optional, cfg.Generation.TypeUnwrapping)
	assert.Equal(t, Mutable, cfg.Generation.Declaration)
	assert.True(t, cfg.Generation.AddDefaultValue)
	assert.True(t, cfg.Generation.AddKeys)
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	cfg, err := LoadConfigWithCLI(writeTempConfig(t, "indentation:\n  width: 2\n"), Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Indentation.Width)
	assert.Equal(t, "RootType", cfg.RootName)
}
