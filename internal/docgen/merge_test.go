package docgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patronacct/draftboard/internal/models"
)

func fieldSet(labels ...string) []models.CustomField {
	out := make([]models.CustomField, 0, len(labels))
	for i, l := range labels {
		out = append(out, models.CustomField{ID: string(rune('a' + i)), Label: l, Type: "text"})
	}
	return out
}

func TestMergeBoundAndMissingValues(t *testing.T) {
	draft := "RESOLVED THAT {{Amount}} be paid to {{Payee}}."
	fields := FieldBindings(fieldSet("Amount", "Payee"), map[string]string{"Amount": "₹50,000"})

	got := Merge(draft, fields, nil)
	assert.Equal(t, "RESOLVED THAT <strong>₹50,000</strong> be paid to <strong>[Payee]</strong>.", got)
}

func TestMergeIsTotal(t *testing.T) {
	// No combination of missing fields or values may panic or drop text.
	cases := []struct {
		name   string
		fields []models.CustomField
		values map[string]string
	}{
		{"nil everything", nil, nil},
		{"fields without values", fieldSet("X"), nil},
		{"values without fields", nil, map[string]string{"X": "v"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge("before {{X}} after", FieldBindings(tc.fields, tc.values), nil)
			assert.True(t, strings.HasPrefix(got, "before "))
			assert.True(t, strings.HasSuffix(got, " after"))
			assert.NotContains(t, got, "{{X}}")
		})
	}
}

func TestMergeUntouchedWhenTokenAbsent(t *testing.T) {
	draft := "no tokens here"
	assert.Equal(t, draft, Merge(draft, FieldBindings(fieldSet("Amount"), nil), SystemBindings(models.CompanyDetails{CompanyName: "Acme"})))
}

func TestMergeGlobalReplacement(t *testing.T) {
	draft := "{{Name}} and {{Name}} and again {{Name}}"
	got := Merge(draft, []Binding{{Name: "Name", Value: "X"}}, nil)
	assert.Equal(t, 3, strings.Count(got, "<strong>X</strong>"))
	assert.NotContains(t, got, "{{Name}}")
}

func TestMergeFieldThenSystemOrder(t *testing.T) {
	// A custom field named like a system variable wins: the field pass runs
	// first and removes the token before system bindings see it.
	draft := "Issued by {{Company_Name}}."
	fields := FieldBindings(fieldSet("Company_Name"), map[string]string{"Company_Name": "Override Ltd"})
	sys := SystemBindings(models.CompanyDetails{CompanyName: "Acme Industries"})

	got := Merge(draft, fields, sys)
	assert.Contains(t, got, "<strong>Override Ltd</strong>")
	assert.NotContains(t, got, "Acme Industries")
}

func TestMergeTokenShapedValues(t *testing.T) {
	// Replacement is textual over the then-current string: a field value
	// shaped like a later system token is picked up by that later pass, but
	// no pass ever loops over its own output.
	draft := "pay {{Amount}} at {{Meeting_Place}}"
	fields := []Binding{{Name: "Amount", Value: "{{Meeting_Place}}"}}
	sys := SystemBindings(models.CompanyDetails{MeetingPlace: "Mumbai"})

	got := Merge(draft, fields, sys)
	// Both the injected token-shaped value and the real token get replaced in
	// the single system pass over the then-current text.
	require.Contains(t, got, "Mumbai")
	assert.NotContains(t, got, "{{")
}

func TestSystemBindingsOrder(t *testing.T) {
	sys := SystemBindings(models.CompanyDetails{})
	names := make([]string, 0, len(sys))
	for _, b := range sys {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Company_Name", "Company_Address", "CIN", "Chairman_Name", "Meeting_Date", "Meeting_Place"}, names)
}

func TestFieldBindingsFallBackToValueKeys(t *testing.T) {
	// An item without a field snapshot still merges its entered values,
	// deterministically by sorted key.
	b := FieldBindings(nil, map[string]string{"Zed": "1", "Alpha": "2"})
	require.Len(t, b, 2)
	assert.Equal(t, "Alpha", b[0].Name)
	assert.Equal(t, "Zed", b[1].Name)
}

func TestExpandSignatoryBoxes(t *testing.T) {
	draft := "before " + SignatoryBoxesToken + " after"
	values := map[string]string{
		FieldSignatoryNames:        "A, B",
		FieldSignatoryDesignations: "Director",
	}
	got := ExpandSignatoryBoxes(draft, values)
	assert.Equal(t, 2, strings.Count(got, "Specimen Signature:"))
	assert.Contains(t, got, "Name: <strong>A</strong>")
	assert.Contains(t, got, "Name: <strong>B</strong>")
	assert.Contains(t, got, "Designation: <strong>Director</strong>")
	// Second signatory has no designation entry; the slot renders empty.
	assert.Contains(t, got, "Designation: <strong></strong>")
	assert.NotContains(t, got, SignatoryBoxesToken)
}

func TestExpandSignatoryBoxesSkipsEmptyNames(t *testing.T) {
	values := map[string]string{FieldSignatoryNames: "A, , C", FieldSignatoryDesignations: "X, Y, Z"}
	got := ExpandSignatoryBoxes(SignatoryBoxesToken, values)
	assert.Equal(t, 2, strings.Count(got, "Specimen Signature:"))
	assert.Contains(t, got, "Designation: <strong>X</strong>")
	// Pairing is positional: C keeps its third-slot designation.
	assert.Contains(t, got, "Designation: <strong>Z</strong>")
}

func TestExpandSignatoryBoxesNoTokenNoChange(t *testing.T) {
	draft := "plain text"
	assert.Equal(t, draft, ExpandSignatoryBoxes(draft, map[string]string{FieldSignatoryNames: "A"}))
}
