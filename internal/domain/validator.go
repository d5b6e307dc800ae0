package domain

import (
	"fmt"
	"go/token"
	"strconv"

	m "expect.dev/pkg/expect/internal/model"
)

// Promotion triggers reported by ValidatedTarget.Trigger.
const (
	TriggerMarker = "marker"
	TriggerOption = "option"
)

// ValidatedTarget is a function whose annotations follow the golden contract.
type ValidatedTarget struct {
	Node        m.FunctionNode
	Expectation m.Annotation
	Expected    string
	Marker      m.Annotation
	HasMarker   bool
	// Trigger names the spelling used to request promotion, empty when
	// promotion was not requested.
	Trigger string
}

// Promote reports whether promotion was requested.
func (t ValidatedTarget) Promote() bool {
	return t.Trigger != ""
}

// Validate checks that node carries exactly one expectation annotation, at
// most one promotion marker and nothing else.
func Validate(path m.Path, node m.FunctionNode) (ValidatedTarget, error) {
	target := ValidatedTarget{Node: node}
	hasExpectation := false
	hasOption := false

	for _, annotation := range node.Annotations {
		fail := func(format string, args ...any) (ValidatedTarget, error) {
			detail := fmt.Sprintf(format, args...)
			return ValidatedTarget{}, newPromotionError(ErrMalformedPromotion, path, annotation.Line, detail, nil)
		}

		if annotation.Malformed != "" {
			return fail("cannot read %s: %s", annotation.Text, annotation.Malformed)
		}

		switch annotation.Name {
		case ExpectationName:
			if hasExpectation {
				return fail("%s appears more than once on %s", ExpectationName, node.Name)
			}

			expected, promote, err := expectationArguments(annotation)
			if err != nil {
				return fail("%s: %v", annotation.Text, err)
			}

			hasExpectation = true
			hasOption = promote != nil
			target.Expectation = annotation
			target.Expected = expected

			if promote != nil && *promote {
				target.Trigger = TriggerOption
			}
		case PromotionMarkerName:
			if annotation.Kind != m.NameOnly {
				return fail("%s takes no arguments", PromotionMarkerName)
			}

			if target.HasMarker {
				return fail("%s appears more than once on %s", PromotionMarkerName, node.Name)
			}

			target.Marker = annotation
			target.HasMarker = true
		default:
			return fail("incompatible annotation %s on %s", annotation.Text, node.Name)
		}
	}

	if !hasExpectation {
		return ValidatedTarget{}, newPromotionError(ErrMalformedPromotion, path, node.DeclarationLine,
			fmt.Sprintf("%s has no %s annotation", node.Name, ExpectationName), nil)
	}

	if target.HasMarker {
		if hasOption {
			return ValidatedTarget{}, newPromotionError(ErrMalformedPromotion, path, node.DeclarationLine,
				fmt.Sprintf("%s cannot be combined with the %s option", PromotionMarkerName, PromoteOption), nil)
		}

		target.Trigger = TriggerMarker
	}

	return target, nil
}

// expectationArguments returns the expected value and the promote option
// (nil when absent).
func expectationArguments(annotation m.Annotation) (string, *bool, error) {
	if annotation.Kind != m.Call {
		return "", nil, fmt.Errorf("expected value is missing")
	}

	var (
		positional []m.Argument
		promote    *bool
	)

	for _, arg := range annotation.Args {
		if arg.Name == "" {
			positional = append(positional, arg)
			continue
		}

		if arg.Name != PromoteOption {
			return "", nil, fmt.Errorf("unknown option %s", arg.Name)
		}

		if promote != nil {
			return "", nil, fmt.Errorf("option %s given more than once", arg.Name)
		}

		value, err := boolOption(arg)
		if err != nil {
			return "", nil, err
		}

		promote = &value
	}

	if len(positional) != 1 {
		return "", nil, fmt.Errorf("want exactly one expected value, got %d", len(positional))
	}

	if positional[0].Kind != token.STRING {
		return "", nil, fmt.Errorf("expected value %s is not a string literal", positional[0].Literal)
	}

	expected, err := strconv.Unquote(positional[0].Literal)
	if err != nil {
		return "", nil, fmt.Errorf("expected value %s: %w", positional[0].Literal, err)
	}

	return expected, promote, nil
}

func boolOption(arg m.Argument) (bool, error) {
	if arg.Kind == token.IDENT {
		switch arg.Literal {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}

	return false, fmt.Errorf("option %s must be true or false, got %s", arg.Name, arg.Literal)
}
