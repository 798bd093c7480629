// Package validation applies declarative per-field rules to incoming form
// data before any business logic runs. Rules are an ordered list of
// (field, predicate, message) entries evaluated uniformly.
package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Violation names an offending field and carries a human-readable message.
// The JSON shape matches the sign-up error contract.
type Violation struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Form is a mapping of form field names to their submitted values.
type Form map[string]string

// Rule is a single validation step for one field. Check returns true when
// the value passes. The whole form is passed so cross-field rules (password
// confirmation) can be expressed the same way as single-field ones.
type Rule struct {
	Field   string
	Message string
	Check   func(value string, form Form) bool
}

// Apply evaluates every rule in order and collects all violations.
func Apply(rules []Rule, form Form) []Violation {
	var violations []Violation
	for _, rule := range rules {
		if !rule.Check(form[rule.Field], form) {
			violations = append(violations, Violation{Msg: rule.Message, Param: rule.Field})
		}
	}

	return violations
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func notEmpty(value string, _ Form) bool {
	return strings.TrimSpace(value) != ""
}

func lettersOnly(value string, _ Form) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		// Emptiness is reported by the preceding rule.
		return true
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

func validEmail(value string, _ Form) bool {
	return validate.Var(strings.TrimSpace(value), "required,email") == nil
}

func minLength(n int) func(string, Form) bool {
	return func(value string, _ Form) bool {
		return len(value) >= n
	}
}

func containsAny(set string) func(string, Form) bool {
	return func(value string, _ Form) bool {
		return strings.ContainsAny(value, set)
	}
}

func containsFunc(fn func(rune) bool) func(string, Form) bool {
	return func(value string, _ Form) bool {
		return strings.ContainsFunc(value, fn)
	}
}

func notIn(blocklist ...string) func(string, Form) bool {
	return func(value string, _ Form) bool {
		for _, blocked := range blocklist {
			if value == blocked {
				return false
			}
		}

		return true
	}
}

func matchesField(other string) func(string, Form) bool {
	return func(value string, form Form) bool {
		return value == form[other]
	}
}
