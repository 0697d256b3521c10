package prompt

import (
	"fmt"

	"github.com/archetect/archetect/internal/core/entities"
)

// validateTextLen enforces §4.5's Text bound: length in
// [min.unwrap_or(1), max.unwrap_or(∞)] measured in characters.
func validateTextLen(key string, min, max *int64, value string) error {
	n := int64(len([]rune(value)))
	lo := int64(1)
	if min != nil {
		lo = *min
	}
	if n < lo {
		return validationErr(key, fmt.Sprintf("must be at least %d characters", lo))
	}
	if max != nil && n > *max {
		return validationErr(key, fmt.Sprintf("must be at most %d characters", *max))
	}
	return nil
}

// validateIntRange enforces §4.5's Int bound: value in [min, max] inclusive
// when set. Error wording matches the testable-properties scenario 2
// ("must be ≤ 120").
func validateIntRange(key string, min, max *int64, value int64) error {
	if min != nil && value < *min {
		return validationErr(key, fmt.Sprintf("must be ≥ %d", *min))
	}
	if max != nil && value > *max {
		return validationErr(key, fmt.Sprintf("must be ≤ %d", *max))
	}
	return nil
}

// validateListLen enforces §4.5's List/MultiSelect bound: min/max bound the
// array/subset length.
func validateListLen(key string, min, max *int64, n int) error {
	if min != nil && int64(n) < *min {
		return validationErr(key, fmt.Sprintf("must have at least %d items", *min))
	}
	if max != nil && int64(n) > *max {
		return validationErr(key, fmt.Sprintf("must have at most %d items", *max))
	}
	return nil
}

// validateOneOf enforces §4.5's Select bound: value must be one of options.
func validateOneOf(key string, options []string, value string) error {
	for _, o := range options {
		if o == value {
			return nil
		}
	}
	return validationErr(key, fmt.Sprintf("must be one of %v", options))
}

// validateSubsetOf enforces §4.5's MultiSelect bound: every chosen value
// must be one of options.
func validateSubsetOf(key string, options []string, values []string) error {
	set := make(map[string]bool, len(options))
	for _, o := range options {
		set[o] = true
	}
	for _, v := range values {
		if !set[v] {
			return validationErr(key, fmt.Sprintf("%q is not one of %v", v, options))
		}
	}
	return nil
}

func validationErr(key, message string) error {
	return entities.NewKeyedError(entities.KindAnswerValidation, key, message)
}

func typeErr(key, wantKind string) error {
	return entities.NewKeyedError(entities.KindAnswerType, key, fmt.Sprintf("answer must be %s", wantKind))
}
