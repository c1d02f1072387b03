package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSwiftyper runs the command with stdin and returns stdout, stderr and
// the exit error.
func runSwiftyper(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	tempDir := t.TempDir()

	jsonContent := `{
		"id": 12345,
		"uuid": "550e8400-e29b-41d4-a716-446655440000",
		"created_at": "2023-05-20T14:56:23Z",
		"updated_at": null,
		"config": {
			"enabled": true,
			"timeout_seconds": 30,
			"retry_count": 3,
			"features": ["logging", "metrics", "alerting"],
			"rate_limits": {
				"per_second": 100,
				"per_minute": 1000,
				"burst": 150
			},
			"environments": {
				"development": {
					"debug": true,
					"log_level": "debug"
				},
				"production": {
					"debug": false,
					"log_level": "info"
				}
			}
		},
		"users": [
			{
				"id": 1,
				"name": "Alice",
				"roles": ["admin", "user"],
				"metadata": {
					"last_login": "2023-05-19T10:30:00Z",
					"login_count": 42
				}
			},
			{
				"id": 2,
				"name": "Bob",
				"roles": ["user"],
				"metadata": {
					"last_login": "2023-05-18T09:15:00Z",
					"login_count": 17
				}
			}
		],
		"stats": {
			"requests": 1234567,
			"errors": 123,
			"success_rate": 0.9999,
			"response_times": [0.045, 0.067, 0.032, 0.051]
		},
		"active": true
	}`

	jsonFile := filepath.Join(tempDir, "complex.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(jsonContent), 0o644))
	outputFile := filepath.Join(tempDir, "Complex.swift")

	_, stderr, err := runSwiftyper(t, "", jsonFile, "-o", outputFile, "-r", "Complex")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	generatedCode, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	code := string(generatedCode)

	assert.Contains(t, code, "struct Complex {")
	assert.Contains(t, code, "    struct Key {")
	assert.Contains(t, code, "    struct <#ConfigType#> {")
	assert.Contains(t, code, "        struct <#RateLimitsType#> {")
	assert.Contains(t, code, "        struct <#EnvironmentsType#> {")
	assert.Contains(t, code, "            struct <#DevelopmentType#> {")
	assert.Contains(t, code, "    struct <#UsersType#> {")
	assert.Contains(t, code, "        struct <#MetadataType#> {")
	assert.Contains(t, code, "    struct <#StatsType#> {")

	assert.Contains(t, code, "    let id: Int!")
	assert.Contains(t, code, "    let uuid: String!")
	assert.Contains(t, code, "    let createdAt: String!")
	assert.Contains(t, code, "    let updatedAt: Any!")
	assert.Contains(t, code, "    let config: <#ConfigType#>!")
	assert.Contains(t, code, "    let users: [<#UsersType#>]!")
	assert.Contains(t, code, "    let active: Bool!")
	assert.Contains(t, code, "        let features: [String]!")
	assert.Contains(t, code, "        let successRate: Double!")
	assert.Contains(t, code, "        let responseTimes: [Double]!")
	assert.Contains(t, code, "            let loginCount: Int!")

	// Every key is listed once, however often it occurs
	assert.Equal(t, 1, strings.Count(code, `let id = "id"`))
	assert.Equal(t, 1, strings.Count(code, `let debug = "debug"`))
	assert.Contains(t, code, `let lastLogin = "last_login"`)

	// Null values are read without a cast
	assert.Contains(t, code, "self.updatedAt = dictionary[keys.updatedAt]\n")

	// Braces balance
	assert.Equal(t, strings.Count(code, "{"), strings.Count(code, "}"))
}

func TestEndToEnd_HeterogeneousArrays(t *testing.T) {
	jsonContent := `{
		"mixed_array": [1, "string", true, null, {"nested": "object"}, [1, 2, 3]],
		"mixed_scalars": [1, 2.5, null],
		"mixed_objects": [
			{"type": "user", "id": 1, "name": "Alice"},
			{"type": "group", "id": 2, "members": 5},
			{"type": "user", "id": 3, "name": "Bob", "active": true}
		]
	}`

	output, stderr, err := runSwiftyper(t, jsonContent)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	// An array holding any object is an array of that object type
	assert.Contains(t, output, "let mixedArray: [<#MixedArrayType#>]!")
	assert.Contains(t, output, "let nested: String!")

	// Int and Double widen to Double, nulls are ignored
	assert.Contains(t, output, "let mixedScalars: [Double]!")

	// Only the first object of an array is inspected
	assert.Contains(t, output, "struct <#MixedObjectsType#> {")
	assert.Contains(t, output, "let type: String!")
	assert.Contains(t, output, "let id: Int!")
	assert.Contains(t, output, "let name: String!")
	assert.NotContains(t, output, "members")
	assert.NotContains(t, output, "active")
}

// writeCatalog writes a JSON array of itemCount product records to path.
func writeCatalog(tb testing.TB, path string, itemCount int) {
	tb.Helper()
	rng := rand.New(rand.NewSource(42))
	epoch := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	items := make([]map[string]any, itemCount)
	for i := range items {
		items[i] = map[string]any{
			"sku":        fmt.Sprintf("SKU-%05d", i+1),
			"title":      fmt.Sprintf("Product %d", i+1),
			"listed_at":  epoch.Add(time.Duration(rng.Intn(10000)) * time.Hour).Format(time.RFC3339),
			"unit price": rng.Float64() * 1000,
			"in_stock":   rng.Intn(100),
			"featured":   rng.Intn(2) == 1,
			"labels":     []string{"new", "sale", "eco"}[0 : rng.Intn(3)+1],
			"dimensions": map[string]any{
				"width_cm":  rng.Intn(200),
				"height_cm": rng.Intn(200),
				"weight":    rng.Float64() * 50,
			},
		}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	require.NoError(tb, err)
	require.NoError(tb, os.WriteFile(path, data, 0o644))
}

// BenchmarkLargeJSON measures a full command run, process start included.
func BenchmarkLargeJSON(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}
	tempDir := b.TempDir()

	for _, itemCount := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("%dItems", itemCount), func(b *testing.B) {
			jsonFile := filepath.Join(tempDir, fmt.Sprintf("catalog_%d.json", itemCount))
			writeCatalog(b, jsonFile, itemCount)
			outputFile := filepath.Join(tempDir, fmt.Sprintf("Catalog%d.swift", itemCount))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", jsonFile, "-o", outputFile, "-r", "Product")
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(outputFile)
				require.NoError(b, err, "Output file was not created")
				_ = os.Remove(outputFile)
			}
		})
	}
}

func TestEndToEnd_BatchWithSettingsFile(t *testing.T) {
	tempDir := t.TempDir()
	settings := "root_name: Product\ngeneration:\n  declaration: var\n  type_unwrapping: optional\n  add_init_and_dictionary: false\n"
	settingsFile := filepath.Join(tempDir, "swiftyper.yml")
	require.NoError(t, os.WriteFile(settingsFile, []byte(settings), 0o644))

	var inputs []string
	for _, n := range []int{1, 3} {
		path := filepath.Join(tempDir, fmt.Sprintf("catalog_%d.json", n))
		writeCatalog(t, path, n)
		inputs = append(inputs, path)
	}
	outDir := filepath.Join(tempDir, "Models")

	_, stderr, err := runSwiftyper(t, "", append(inputs, "-c", settingsFile, "--out-dir", outDir, "-j", "2")...)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	for _, name := range []string{"catalog_1.swift", "catalog_3.swift"} {
		content, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		code := string(content)

		assert.True(t, strings.HasPrefix(code, "// The JSON root is an array; decode it as [Product].\nstruct Product {\n"))
		assert.Contains(t, code, `var unitPrice = "unit price"`)
		assert.Contains(t, code, "    var unitPrice: Double?\n")
		assert.Contains(t, code, "    var dimensions: <#DimensionsType#>?\n")
		assert.Contains(t, code, "        var widthCm: Int?\n")
		assert.NotContains(t, code, "init(dictionary:")
		assert.Contains(t, stderr, name)
	}
}

func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		json     string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			json:     `{}`,
			expected: "struct RootType {",
			isError:  false,
		},
		{
			name:     "EmptyArray",
			json:     `[]`,
			expected: "typealias RootType = [Any]",
			isError:  false,
		},
		{
			name:     "ScalarArray",
			json:     `[1, 2, 3]`,
			expected: "typealias RootType = [Int]",
			isError:  false,
		},
		{
			name:    "SingleValue",
			json:    `"just a string"`,
			isError: true,
		},
		{
			name:    "SingleNumber",
			json:    `42`,
			isError: true,
		},
		{
			name:    "SingleBoolean",
			json:    `true`,
			isError: true,
		},
		{
			name:    "SingleNull",
			json:    `null`,
			isError: true,
		},
		{
			name:    "InvalidJSON",
			json:    `{"name": "Invalid JSON",}`,
			isError: true,
		},
		{
			name:    "MultipleValues",
			json:    `{"a": 1} {"b": 2}`,
			isError: true,
		},
		{
			name:     "DeeplyNestedObject",
			json:     `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}`,
			expected: "                    struct <#Level5Type#> {",
			isError:  false,
		},
		{
			name:     "DeeplyNestedArray",
			json:     `[[[[[[42]]]]]]`,
			expected: "typealias RootType = [[[[[[Int]]]]]]",
			isError:  false,
		},
		{
			name:     "KeywordAndDigitKeys",
			json:     `{"class": "wizard", "2fa": true}`,
			expected: "let `class`: String!",
			isError:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runSwiftyper(t, tc.json)
			if tc.isError {
				assert.Error(t, err, "Expected an error for %s", tc.name)
				return
			}
			assert.NoError(t, err, "Unexpected error for %s: %s", tc.name, stderr)
			assert.Contains(t, stdout, tc.expected, "Expected output not found for %s", tc.name)
		})
	}
}
