package codec

// Sanitize removes the whitespace the formatter (or a human) may have
// injected into encoded text: space, tab, newline, and carriage return. All
// other bytes keep their relative order. Single pass, idempotent.
func Sanitize(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for _, b := range src {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			out = append(out, b)
		}
	}
	return out
}
