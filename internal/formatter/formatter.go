package formatter

import (
	"fmt"
	"go/format"
	"strings"
)

// Formatter runs generated Go declarations through gofmt.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format takes Go code as a string and returns gofmt-formatted code. The code
// may be a full file or a bare list of declarations without a package clause.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	formatted, err := format.Source([]byte(code))
	if err != nil {
		return "", fmt.Errorf("failed to parse Go code: %w", err)
	}
	return strings.TrimRight(string(formatted), "\n"), nil
}
