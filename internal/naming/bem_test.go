package naming

import (
	"strings"
	"testing"
)

func rules(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Rule)
	}
	return out
}

func hasRule(issues []Issue, rule string) bool {
	for _, i := range issues {
		if i.Rule == rule {
			return true
		}
	}
	return false
}

func TestCheckSegment(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRules []string
	}{
		{"valid plain", "owner-name", nil},
		{"valid with underscore", "owner_first_name", nil},
		{"valid mixed case", "OwnerName", nil},
		{"empty", "", []string{"empty_name"}},
		{"dot changes hierarchy", "owner.name", []string{"invalid_characters"}},
		{"spaces", "owner name", []string{"invalid_characters"}},
		{"too short", "ab", []string{"too_short"}},
		{"too long", strings.Repeat("a", MaxLength+1), []string{"too_long"}},
		{"reserved lowercase", "submit", []string{"reserved_name"}},
		{"reserved uppercase", "SUBMIT", []string{"reserved_name"}},
		{"short and invalid", "!", []string{"invalid_characters", "too_short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules(CheckSegment(tt.input))
			if len(got) != len(tt.wantRules) {
				t.Fatalf("CheckSegment(%q) rules = %v, want %v", tt.input, got, tt.wantRules)
			}
			for i := range tt.wantRules {
				if got[i] != tt.wantRules[i] {
					t.Errorf("CheckSegment(%q) rule[%d] = %q, want %q", tt.input, i, got[i], tt.wantRules[i])
				}
			}
		})
	}
}

func TestCheckSegmentBoundaryLengths(t *testing.T) {
	if issues := CheckSegment(strings.Repeat("a", MinLength)); len(issues) != 0 {
		t.Errorf("minimum length name rejected: %v", issues)
	}
	if issues := CheckSegment(strings.Repeat("a", MaxLength)); len(issues) != 0 {
		t.Errorf("maximum length name rejected: %v", issues)
	}
}

func TestCheckBEM(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		isGroup bool
		want    string // expected rule, "" for valid
	}{
		{"block only", "owner-information", false, ""},
		{"block element", "owner-information_first-name", false, ""},
		{"block element modifier", "payment_amount__monthly", false, ""},
		{"group with suffix", "gender--group", true, ""},
		{"full group name", "owner-information_gender--group", true, ""},
		{"uppercase rejected", "OwnerName", false, "invalid_bem_syntax"},
		{"leading digit rejected", "1st-owner", false, "invalid_bem_syntax"},
		{"double element rejected", "a_b_c", false, "invalid_bem_syntax"},
		{"group missing suffix", "gender", true, "missing_group_suffix"},
		{"non-group with suffix", "gender--group", false, "unexpected_group_suffix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckBEM(tt.input, tt.isGroup)
			if tt.want == "" {
				if len(issues) != 0 {
					t.Fatalf("CheckBEM(%q, %v) = %v, want none", tt.input, tt.isGroup, issues)
				}
				return
			}
			if !hasRule(issues, tt.want) {
				t.Errorf("CheckBEM(%q, %v) = %v, want rule %q", tt.input, tt.isGroup, issues, tt.want)
			}
		})
	}
}

func TestCheckBEMStopsAfterSyntaxFailure(t *testing.T) {
	issues := CheckBEM("Not_Valid", true)
	if !hasRule(issues, "invalid_bem_syntax") {
		t.Fatalf("expected syntax issue, got %v", issues)
	}
	if hasRule(issues, "missing_group_suffix") {
		t.Error("suffix rule should not fire on syntactically invalid names")
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"id", "Name", "VALUE", "onclick"} {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false, want true", name)
		}
	}
	if IsReserved("owner-name") {
		t.Error("IsReserved(owner-name) = true, want false")
	}
}

func TestMatchBlock(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"First Name of the Policyholder", "owner-information"},
		{"Street Address", "contact-information"},
		{"Primary Beneficiary Percentage", "beneficiary-information"},
		{"Monthly Premium Amount", "payment-information"},
		{"Signature of Witness", "signatures"},
		{"I agree to the terms", "agreement"},
		{"Flux capacitor setting", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MatchBlock(tt.label); got != tt.want {
			t.Errorf("MatchBlock(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
