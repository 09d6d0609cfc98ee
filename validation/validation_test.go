package validation

import "testing"

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "value", v)
	Required("blank", "   ", v)
	if len(v) != 1 {
		t.Fatalf("expected one violation, got %v", v)
	}
	if v["blank"] != "required" {
		t.Fatalf("unexpected: %v", v)
	}
	if _, ok := v["name"]; ok {
		t.Fatal("name should pass")
	}
}

func TestEmail(t *testing.T) {
	v := Violations{}
	Email("email", "user@example.com", v)
	if !v.Empty() {
		t.Fatalf("unexpected violation: %v", v)
	}
	for _, bad := range []string{"", "not-an-email", "missing@tld@twice"} {
		v = Violations{}
		Email("email", bad, v)
		if v["email"] != "invalid_email" {
			t.Fatalf("%q: expected invalid_email, got %v", bad, v)
		}
	}
}

func TestOneOf(t *testing.T) {
	v := Violations{}
	OneOf("category", "RESOLUTION", []string{"RESOLUTION", "NOC"}, v)
	if !v.Empty() {
		t.Fatalf("unexpected violation: %v", v)
	}
	OneOf("category", "BOGUS", []string{"RESOLUTION", "NOC"}, v)
	if v["category"] != "invalid_value" {
		t.Fatalf("expected invalid_value: %v", v)
	}
}

func TestUniqueLabels(t *testing.T) {
	v := Violations{}
	UniqueLabels("fields", []string{"Amount", "Payee"}, v)
	if !v.Empty() {
		t.Fatalf("unexpected violation: %v", v)
	}
	UniqueLabels("fields", []string{"Amount", "Payee", "Amount"}, v)
	if v["fields"] != "duplicate_label: Amount" {
		t.Fatalf("expected duplicate: %v", v)
	}

	// Matching is case-sensitive, like the token syntax itself.
	v = Violations{}
	UniqueLabels("fields", []string{"Amount", "amount"}, v)
	if !v.Empty() {
		t.Fatalf("case-insensitive match not expected: %v", v)
	}
}
