package codec

// Decode recovers the original bytes from encoded text using greedy
// longest-match-first scanning. At each position the leading byte's high
// bits give a candidate unit length; the decoder clamps it to the remaining
// input, then tries the inverse table at that length and shrinks one byte at
// a time down to a single byte. Candidate lengths above maxSequenceLen are
// never used as lookup keys. A position that matches at no length is skipped
// without output, so foreign or corrupted bytes degrade the result instead
// of aborting the run.
//
// The input is expected to be sanitized already; whitespace left in the
// stream is treated like any other unmatched byte.
func (t *SymbolTable) Decode(src []byte) []byte {
	out := make([]byte, 0, len(src))
	i := 0
	for i < len(src) {
		est := unitLen(src[i])
		if rem := len(src) - i; est > rem {
			est = rem
		}

		matched := false
		for n := est; n >= 1; n-- {
			if n > maxSequenceLen {
				continue
			}
			b, ok := t.decode[sequenceKey(src[i:i+n])]
			if !ok {
				continue
			}
			out = append(out, b)
			i += n
			matched = true
			break
		}
		if !matched {
			i++
		}
	}
	return out
}
