// Package naming holds the BEM-style identifier rules for form field names:
// the grammar, the reserved-name list, length bounds, and deterministic
// name suggestions from field labels.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinLength and MaxLength bound accepted name segments.
	MinLength = 3
	MaxLength = 100

	// GroupSuffix marks radio group names.
	GroupSuffix = "--group"
)

// bemPattern is the full BEM grammar: block, optional _element, optional
// __modifier, optional --group suffix.
var bemPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*(_[a-z][a-z0-9-]*)?(__[a-z][a-z0-9-]*)?(--group)?$`)

// segmentPattern is the permissive charset accepted for raw rename targets:
// letters, digits, underscore, hyphen. Dots are rejected because a dot
// would change the FQN hierarchy.
var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reservedNames collide with common HTML form attribute and handler names.
var reservedNames = map[string]bool{
	"id":       true,
	"name":     true,
	"value":    true,
	"type":     true,
	"class":    true,
	"style":    true,
	"onclick":  true,
	"onchange": true,
	"onload":   true,
	"submit":   true,
	"reset":    true,
	"button":   true,
	"input":    true,
}

// Issue is one rule violation found in a proposed name.
type Issue struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// CheckSegment validates a raw rename target segment: non-empty, accepted
// charset, length bounds, not reserved. Returns every violation, not just
// the first.
func CheckSegment(name string) []Issue {
	var issues []Issue
	if name == "" {
		return []Issue{{Rule: "empty_name", Message: "name cannot be empty"}}
	}
	if !segmentPattern.MatchString(name) {
		issues = append(issues, Issue{
			Rule:    "invalid_characters",
			Message: fmt.Sprintf("%q contains characters outside [A-Za-z0-9_-]", name),
		})
	}
	if len(name) < MinLength {
		issues = append(issues, Issue{
			Rule:    "too_short",
			Message: fmt.Sprintf("%q is shorter than %d characters", name, MinLength),
		})
	}
	if len(name) > MaxLength {
		issues = append(issues, Issue{
			Rule:    "too_long",
			Message: fmt.Sprintf("%q exceeds %d characters", name, MaxLength),
		})
	}
	if reservedNames[strings.ToLower(name)] {
		issues = append(issues, Issue{
			Rule:    "reserved_name",
			Message: fmt.Sprintf("%q is a reserved name", name),
		})
	}
	return issues
}

// CheckBEM validates a name against the full BEM grammar in addition to the
// segment rules. isGroup asserts the name belongs to a radio group, which
// must carry the --group suffix; non-group names must not.
func CheckBEM(name string, isGroup bool) []Issue {
	issues := CheckSegment(name)
	if name == "" {
		return issues
	}
	if !bemPattern.MatchString(name) {
		issues = append(issues, Issue{
			Rule:    "invalid_bem_syntax",
			Message: fmt.Sprintf("%q does not follow the block_element__modifier convention", name),
		})
		return issues
	}
	hasSuffix := strings.HasSuffix(name, GroupSuffix)
	switch {
	case isGroup && !hasSuffix:
		issues = append(issues, Issue{
			Rule:    "missing_group_suffix",
			Message: fmt.Sprintf("radio group name %q must end with %s", name, GroupSuffix),
		})
	case !isGroup && hasSuffix:
		issues = append(issues, Issue{
			Rule:    "unexpected_group_suffix",
			Message: fmt.Sprintf("only radio group names may end with %s, got %q", GroupSuffix, name),
		})
	}
	return issues
}

// IsReserved reports whether a name is on the reserved list.
func IsReserved(name string) bool {
	return reservedNames[strings.ToLower(name)]
}
