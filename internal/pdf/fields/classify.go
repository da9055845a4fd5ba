package fields

import "regexp"

// datePicture matches the date format hints Acrobat-authored forms carry in
// tooltips and AFDate format actions (mm/dd/yyyy and friends).
var datePicture = regexp.MustCompile(`(?i)\b(m{1,2}[/.\-]d{1,2}[/.\-]y{2,4}|d{1,2}[/.\-]m{1,2}[/.\-]y{2,4}|y{4}[/.\-]m{1,2}[/.\-]d{1,2}|AFDate)`)

// Classify assigns a field kind from the node's dictionary-derived
// attributes. Pure function of the node; deterministic rule order, first
// match wins:
//
//  1. FT Sig -> Signature
//  2. FT Btn, radio bit set, field children -> RadioGroup
//  3. FT Btn, radio bit set, terminal -> RadioButton
//  4. FT Btn, radio and pushbutton unset -> CheckBox
//  5. FT Btn, pushbutton set -> PushButton
//  6. FT Tx with a date hint -> DateField (low-confidence heuristic; the
//     raw flags stay on the node so a consumer can re-derive)
//  7. FT Tx -> TextField
//  8. anything else -> Unknown (kept, never dropped)
func Classify(n *Node) FieldKind {
	switch n.FT {
	case "Sig":
		return KindSignature
	case "Btn":
		radio := n.Flags&FlagRadio != 0
		push := n.Flags&FlagPushbutton != 0
		switch {
		case radio && len(n.Children) > 0:
			return KindRadioGroup
		case radio:
			return KindRadioButton
		case !push:
			return KindCheckBox
		default:
			return KindPushButton
		}
	case "Tx":
		if hasDateHint(n.Tooltip, n.formatScript) {
			return KindDateField
		}
		return KindTextField
	default:
		return KindUnknown
	}
}

// hasDateHint reports whether the tooltip or a format action suggests a
// date field. Deliberately conservative.
func hasDateHint(tooltip, formatScript string) bool {
	if tooltip != "" && datePicture.MatchString(tooltip) {
		return true
	}
	return formatScript != "" && datePicture.MatchString(formatScript)
}
