package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// outputFormat selects how results are printed.
type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputCSV   outputFormat = "csv"
	outputYAML  outputFormat = "yaml"
)

const tabPadding = 2

func parseOutputFormat(s string, allowed ...outputFormat) (outputFormat, error) {
	f := outputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid output format %q: must be one of %s", s, strings.Join(names, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
