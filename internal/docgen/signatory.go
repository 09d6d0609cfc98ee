package docgen

import (
	"fmt"
	"strings"
)

// SignatoryBoxesToken is the one placeholder that expands into structural
// HTML (N repeated signature blocks) instead of a scalar value.
const SignatoryBoxesToken = "{{DYNAMIC_SIGNATORY_BOXES}}"

// Field labels of the Specimen Signature Card system template that feed the
// dynamic expansion. The token grammar is load-bearing for previously
// authored templates, so these names must not change.
const (
	FieldSignatoryNames        = "Signatory Names (Comma Separated)"
	FieldSignatoryDesignations = "Signatory Designations (Comma Separated)"
)

// ExpandSignatoryBoxes replaces the dynamic block with one bordered signature
// box per non-empty name. Names pair positionally with designations; entries
// past the end of the shorter designation list get an empty designation.
func ExpandSignatoryBoxes(draft string, values map[string]string) string {
	if !strings.Contains(draft, SignatoryBoxesToken) {
		return draft
	}
	names := strings.Split(values[FieldSignatoryNames], ",")
	designations := strings.Split(values[FieldSignatoryDesignations], ",")

	var boxes strings.Builder
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		designation := ""
		if i < len(designations) {
			designation = strings.TrimSpace(designations[i])
		}
		fmt.Fprintf(&boxes, `
            <div style="border: 2px solid #000; padding: 15px; margin-bottom: 20px; page-break-inside: avoid;">
              <p style="margin: 0 0 10px 0;">Name: <strong>%s</strong></p>
              <p style="margin: 0 0 10px 0;">Designation: <strong>%s</strong></p>
              <p style="margin: 0 0 5px 0;">Specimen Signature:</p>
              <p style="margin: 10px 0;">1. __________________________</p>
              <p style="margin: 10px 0;">2. __________________________</p>
              <p style="margin: 10px 0;">3. __________________________</p>
            </div>
          `, name, designation)
	}
	return strings.Replace(draft, SignatoryBoxesToken, boxes.String(), 1)
}
