package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Email flags a missing or syntactically invalid address.
func Email(field, value string, v Violations) {
	if err := validate.Var(value, "required,email"); err != nil {
		v[field] = "invalid_email"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// UniqueLabels flags duplicate entries. Matching is exact and
// case-sensitive, the same rule the merge engine uses for placeholder
// tokens. Duplicate labels collide in the substitution engine where only
// the last bound value survives, so they are rejected at template-save time.
func UniqueLabels(field string, labels []string, v Violations) {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			v[field] = "duplicate_label: " + l
			return
		}
		seen[l] = true
	}
}
