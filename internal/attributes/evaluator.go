package attributes

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/mrzor/process-details/internal/config"
	"go.opentelemetry.io/otel/attribute"
)

// Evaluator handles compilation and evaluation of custom attribute expressions.
type Evaluator struct {
	customAttrs   []config.CustomAttribute
	compiledExprs []*vm.Program
}

// NewEvaluator creates a new attribute evaluator.
// It pre-compiles all custom attribute expressions for efficiency.
func NewEvaluator(customAttrs []config.CustomAttribute) (*Evaluator, error) {
	// Pre-compile custom attribute expressions
	compiledExprs := make([]*vm.Program, len(customAttrs))
	for i, attr := range customAttrs {
		program, err := expr.Compile(attr.Expression, expr.Env(typeEnv()))
		if err != nil {
			return nil, fmt.Errorf("failed to compile expression for attribute %q: %w", attr.Name, err)
		}
		compiledExprs[i] = program
	}

	return &Evaluator{
		customAttrs:   customAttrs,
		compiledExprs: compiledExprs,
	}, nil
}

// EvaluateCustomAttributes evaluates custom attribute expressions against a subject.
// Attributes whose expression fails at runtime are skipped.
func (e *Evaluator) EvaluateCustomAttributes(subject *Subject) ([]attribute.KeyValue, error) {
	if len(e.customAttrs) == 0 {
		return nil, nil
	}

	if subject == nil {
		return nil, nil
	}

	// Build the evaluation environment once for all attributes
	env := subject.exprEnv()

	var attrs []attribute.KeyValue
	for i, customAttr := range e.customAttrs {
		output, err := expr.Run(e.compiledExprs[i], env)
		if err != nil {
			// One bad attribute must not drop the others
			slog.Warn("failed to evaluate attribute expression", "attribute", customAttr.Name, "error", err)
			continue
		}

		// Maps expand into one attribute per key, with dot notation.
		outputValue := reflect.ValueOf(output)
		if outputValue.Kind() == reflect.Map {
			for _, key := range outputValue.MapKeys() {
				keyStr := fmt.Sprintf("%v", key.Interface())
				attrName := customAttr.Name + "." + sanitizeAttributeName(keyStr)
				attrs = append(attrs, attribute.String(attrName, fmt.Sprint(outputValue.MapIndex(key).Interface())))
			}
			continue
		}

		// Scalars are stringified as-is
		attrs = append(attrs, attribute.String(customAttr.Name, fmt.Sprint(output)))
	}

	return attrs, nil
}

// sanitizeAttributeName replaces non-alphanumeric characters with underscores.
// This ensures attribute names are safe for OpenTelemetry.
func sanitizeAttributeName(name string) string {
	result := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result[i] = c
		} else {
			result[i] = '_'
		}
	}
	return string(result)
}
