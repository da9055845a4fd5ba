package fields

// Field flag bit positions from the PDF specification (table 221/226/230).
// Positions are 1-based; masks are 1 << (pos-1).
const (
	FlagReadOnly        uint32 = 1 << 0  // bit 1
	FlagRequired        uint32 = 1 << 1  // bit 2
	FlagNoExport        uint32 = 1 << 2  // bit 3
	FlagMultiline       uint32 = 1 << 12 // bit 13
	FlagPassword        uint32 = 1 << 13 // bit 14
	FlagNoToggleToOff   uint32 = 1 << 14 // bit 15
	FlagRadio           uint32 = 1 << 15 // bit 16
	FlagPushbutton      uint32 = 1 << 16 // bit 17
	FlagCombo           uint32 = 1 << 17 // bit 18
	FlagEdit            uint32 = 1 << 18 // bit 19
	FlagSort            uint32 = 1 << 19 // bit 20
	FlagFileSelect      uint32 = 1 << 20 // bit 21
	FlagMultiSelect     uint32 = 1 << 21 // bit 22
	FlagDoNotSpellCheck uint32 = 1 << 22 // bit 23
	FlagDoNotScroll     uint32 = 1 << 23 // bit 24
	FlagComb            uint32 = 1 << 24 // bit 25
	FlagRadiosInUnison  uint32 = 1 << 25 // bit 26
)

// flagNames maps masks to their PDF 32000-1 names, in bit order.
var flagNames = []struct {
	mask uint32
	name string
}{
	{FlagReadOnly, "ReadOnly"},
	{FlagRequired, "Required"},
	{FlagNoExport, "NoExport"},
	{FlagMultiline, "Multiline"},
	{FlagPassword, "Password"},
	{FlagNoToggleToOff, "NoToggleToOff"},
	{FlagRadio, "Radio"},
	{FlagPushbutton, "Pushbutton"},
	{FlagCombo, "Combo"},
	{FlagEdit, "Edit"},
	{FlagSort, "Sort"},
	{FlagFileSelect, "FileSelect"},
	{FlagMultiSelect, "MultiSelect"},
	{FlagDoNotSpellCheck, "DoNotSpellCheck"},
	{FlagDoNotScroll, "DoNotScroll"},
	{FlagComb, "Comb"},
	{FlagRadiosInUnison, "RadiosInUnison"},
}

// FlagNames decodes a raw Ff bitmask into the names of the set bits.
func FlagNames(flags uint32) []string {
	var names []string
	for _, f := range flagNames {
		if flags&f.mask != 0 {
			names = append(names, f.name)
		}
	}
	return names
}
