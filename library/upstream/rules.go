package upstream

import (
	"fmt"
	"regexp"
)

// Rule is a pure predicate over an immutable parameter set. Check returns a
// Violation when the constraint does not hold, nil otherwise.
type Rule struct {
	Name  string
	Check func(Params) *Violation
}

// Validate evaluates every rule and aggregates all violations into a single
// ValidationError so the caller sees the complete list, not just the first
// failing constraint. A nil return means all rules passed.
func Validate(params Params, rules []Rule) error {
	var violations []Violation
	for _, rule := range rules {
		if v := rule.Check(params); v != nil {
			violations = append(violations, *v)
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	return nil
}

// MutuallyExclusive rejects parameter sets where both named fields are present.
func MutuallyExclusive(a, b string) Rule {
	return Rule{
		Name: fmt.Sprintf("%s_conflicts_%s", a, b),
		Check: func(params Params) *Violation {
			if params.Has(a) && params.Has(b) {
				return &Violation{
					Field:   a,
					Message: fmt.Sprintf("%s and %s cannot both be specified", a, b),
				}
			}
			return nil
		},
	}
}

// MatchesPattern rejects parameter sets where the named field is present but
// does not match the given pattern. Absent fields pass.
func MatchesPattern(field string, pattern *regexp.Regexp, message string) Rule {
	return Rule{
		Name: fmt.Sprintf("%s_pattern", field),
		Check: func(params Params) *Violation {
			value, ok := params.String(field)
			if !ok || pattern.MatchString(value) {
				return nil
			}
			return &Violation{Field: field, Message: message}
		},
	}
}

// RequiredWhenEquals rejects parameter sets where the trigger field holds the
// given value but the required field is absent.
func RequiredWhenEquals(trigger, value, required string) Rule {
	return Rule{
		Name: fmt.Sprintf("%s_requires_%s", trigger, required),
		Check: func(params Params) *Violation {
			got, ok := params.String(trigger)
			if !ok || got != value {
				return nil
			}
			if params.Has(required) {
				return nil
			}
			return &Violation{
				Field:   required,
				Message: fmt.Sprintf("%s is required when %s is %s", required, trigger, value),
			}
		},
	}
}
