package prefixcode

import "strings"

// Encode concatenates the codes of message's symbols. Symbols missing from
// the table are dropped.
func Encode(message string, t *CodeTable) string {
	var sb strings.Builder
	for _, r := range message {
		if e, ok := t.Lookup(r); ok {
			sb.WriteString(e.Code)
		}
	}
	return sb.String()
}

// Decode reads bits one at a time and emits a symbol as soon as the
// accumulated bits form a code word. Bits left over at the end are dropped.
func Decode(bits string, t *CodeTable) string {
	codes := t.Inverse()
	var sb strings.Builder
	var candidate strings.Builder
	for _, b := range bits {
		candidate.WriteRune(b)
		if sym, ok := codes[candidate.String()]; ok {
			sb.WriteRune(sym)
			candidate.Reset()
		}
	}
	return sb.String()
}
