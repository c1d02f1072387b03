package formatter

import (
	"strings"
)

// Formatter normalizes the whitespace of generated Swift source.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format trims trailing whitespace, collapses runs of blank lines, drops
// blank lines that open or close a brace block and ends the result with
// exactly one newline. Empty input stays empty. Format is idempotent.
func (f *Formatter) Format(code string) string {
	if strings.TrimSpace(code) == "" {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	result := make([]string, 0, len(lines))
	pendingBlank := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			pendingBlank = len(result) > 0
			continue
		}

		if pendingBlank && !opensBlock(result[len(result)-1]) && !closesBlock(line) {
			result = append(result, "")
		}
		pendingBlank = false
		result = append(result, line)
	}

	return strings.Join(result, "\n") + "\n"
}

func opensBlock(line string) bool {
	return strings.HasSuffix(line, "{")
}

func closesBlock(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "}")
}
