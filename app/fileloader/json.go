package fileloader

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// parseJSONData parses a dataset document with oj. Integers decode as
// int64 and decimals as float64, both of which become numeric values.
func parseJSONData(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("data is empty")
	}
	jsonData, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return jsonData, nil
}

// selectRows applies an optional JSONPath expression to a parsed document.
// An empty expression (or "$") returns the document itself. The first match
// is used; wrapped exports look like {"data": [[...], ...]}.
func selectRows(jsonData any, expression string) (any, error) {
	if expression == "" || expression == "$" {
		return jsonData, nil
	}

	x, err := jp.ParseString(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression %q: %w", expression, err)
	}

	results := x.Get(jsonData)
	if len(results) == 0 {
		return nil, fmt.Errorf("JSONPath expression %q returned no results", expression)
	}
	return results[0], nil
}
