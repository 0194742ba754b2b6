// internal/leaderboard/schema.go
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

func groupSchema(requireAverage bool) map[string]any {
	props := map[string]any{
		"average": map[string]any{"type": "number"},
	}
	for _, lang := range Languages {
		props[lang] = map[string]any{"type": "number"}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if requireAverage {
		schema["required"] = []string{"average"}
	} else {
		schema["type"] = []string{"object", "null"}
	}
	return schema
}

// Schema returns the JSON schema a leaderboard document must satisfy.
// Only models.<name>.bm25.average is mandatory.
func Schema() map[string]any {
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"models"},
		"properties": map[string]any{
			"models": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "object",
					"required": []string{GroupBM25},
					"properties": map[string]any{
						GroupBaseline: groupSchema(false),
						GroupOracle:   groupSchema(false),
						GroupBM25:     groupSchema(true),
					},
				},
			},
		},
	}
}

// ShapeError lists every schema violation found in a document.
type ShapeError struct {
	Violations []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrShape.Error(), strings.Join(e.Violations, "; "))
}

// Unwrap lets errors.Is match ErrShape.
func (e *ShapeError) Unwrap() error { return ErrShape }

// Validate checks a generically decoded YAML tree against Schema. It returns
// nil or a *ShapeError.
func Validate(doc any) error {
	if doc == nil {
		return &ShapeError{Violations: []string{"(root): document is empty"}}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(Schema()), gojsonschema.NewGoLoader(normalize(doc)))
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrShape, err)
	}
	if result.Valid() {
		return nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	sort.Strings(violations)
	return &ShapeError{Violations: violations}
}

// normalize converts a YAML tree into values encoding/json can marshal.
// Mapping keys that YAML resolved to non-strings (e.g. a model named 7) are
// stringified.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
