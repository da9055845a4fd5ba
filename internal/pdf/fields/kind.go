package fields

// FieldKind is the closed set of form field classifications. New kinds
// require updating every switch over FieldKind, which is intentional.
type FieldKind string

const (
	KindTextField   FieldKind = "TextField"
	KindCheckBox    FieldKind = "CheckBox"
	KindRadioButton FieldKind = "RadioButton"
	KindRadioGroup  FieldKind = "RadioGroup"
	KindSignature   FieldKind = "Signature"
	KindDateField   FieldKind = "DateField"
	KindPushButton  FieldKind = "PushButton"
	KindUnknown     FieldKind = "Unknown"
)

// Terminal reports whether the kind is widget-bearing. RadioGroups are the
// only non-terminal classified kind; Unknown fields may be either but are
// treated as terminal for reporting purposes.
func (k FieldKind) Terminal() bool {
	return k != KindRadioGroup
}
