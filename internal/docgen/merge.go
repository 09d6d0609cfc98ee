// Package docgen implements the template merge and document assembly engine:
// placeholder substitution over {{Name}} tokens, the dynamic signatory-box
// expansion, and the assembler that composes header, resolution items and
// signatory footer into one self-contained HTML document.
package docgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patronacct/draftboard/internal/models"
)

// Binding is one ordered name/value pair applied during a merge pass.
type Binding struct {
	Name  string
	Value string
}

// SystemBindings derives the fixed-name system variables from company and
// meeting details. Order is part of the contract: bindings are applied in
// this sequence after the per-template custom fields.
func SystemBindings(d models.CompanyDetails) []Binding {
	return []Binding{
		{Name: "Company_Name", Value: d.CompanyName},
		{Name: "Company_Address", Value: d.Address},
		{Name: "CIN", Value: d.CIN},
		{Name: "Chairman_Name", Value: d.ChairmanName},
		{Name: "Meeting_Date", Value: d.MeetingDate},
		{Name: "Meeting_Place", Value: d.MeetingPlace},
	}
}

// FieldBindings pairs a template's custom fields with the user-entered values
// for one resolution item. Fields with no entered value bind empty, which
// Merge renders as the visible [Label] fallback. When the field set is empty
// (the item outlived a deleted template without a snapshot), the binding set
// falls back to the value map's own keys so entered data is never dropped.
func FieldBindings(fields []models.CustomField, values map[string]string) []Binding {
	if len(fields) == 0 && len(values) > 0 {
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Binding, 0, len(keys))
		for _, k := range keys {
			out = append(out, Binding{Name: k, Value: values[k]})
		}
		return out
	}
	out := make([]Binding, 0, len(fields))
	for _, f := range fields {
		out = append(out, Binding{Name: f.Label, Value: values[f.Label]})
	}
	return out
}

// Merge substitutes placeholder tokens in draft text. Custom-field bindings
// are applied first, system bindings second; each pass rewrites every literal
// occurrence of {{Name}} in the then-current text exactly once, so already
// substituted values are never reinterpreted as tokens. Bound values are
// wrapped in <strong>; empty or missing values degrade to a visible [Name]
// marker instead of leaving the token or emitting blank text.
//
// Merge is not idempotent: values containing {{...}}-shaped text are replayed
// by a second merge. Draft text is treated as administrator-authored.
func Merge(text string, fields []Binding, system []Binding) string {
	for _, b := range fields {
		text = replaceToken(text, b.Name, b.Value)
	}
	for _, b := range system {
		text = replaceToken(text, b.Name, b.Value)
	}
	return text
}

func replaceToken(text, name, value string) string {
	token := "{{" + name + "}}"
	if !strings.Contains(text, token) {
		return text
	}
	if value == "" {
		value = "[" + name + "]"
	}
	return strings.ReplaceAll(text, token, fmt.Sprintf("<strong>%s</strong>", value))
}
