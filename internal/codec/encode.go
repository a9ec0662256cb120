package codec

// Encode maps every input byte to its printable sequence and returns the
// concatenation, in input order, with no separators. Output length is at
// most three times the input length. Encoding has no failure modes: after a
// successful table build every byte value has a sequence. A byte with an
// empty sequence is skipped rather than reported, since it cannot occur in a
// validated table.
func (t *SymbolTable) Encode(src []byte) []byte {
	out := make([]byte, 0, len(src)*maxSequenceLen)
	for _, b := range src {
		seq := t.encode[b]
		if seq.Len() == 0 {
			continue
		}
		out = append(out, seq.Bytes()...)
	}
	return out
}
