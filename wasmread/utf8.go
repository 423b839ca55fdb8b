package wasmread

import (
	"strings"
	"unicode/utf8"
)

// decodeUTF8 decodes raw one codepoint at a time. Each malformed sequence
// becomes a single U+FFFD and decoding resumes at the first byte that broke
// the sequence. It returns the offset of the first malformed sequence, or -1.
//
// Substitution only looks at the sequence structure: the lead byte must
// announce 1 to 4 bytes and every continuation byte must be 10xxxxxx. Overlong
// forms decode to their codepoint but are reported as malformed. Surrogates
// and values above U+10FFFF come out as U+FFFD.
func decodeUTF8(raw []byte) (string, int) {
	var sb strings.Builder
	sb.Grow(len(raw))
	bad := -1
	markBad := func(at int) {
		if bad < 0 {
			bad = at
		}
	}

	for i := 0; i < len(raw); {
		b := raw[i]
		if b < 0x80 {
			sb.WriteByte(b)
			i++
			continue
		}

		var n int
		var cp, min rune
		switch {
		case b&0xE0 == 0xC0:
			n, cp, min = 2, rune(b&0x1F), 0x80
		case b&0xF0 == 0xE0:
			n, cp, min = 3, rune(b&0x0F), 0x800
		case b&0xF8 == 0xF0:
			n, cp, min = 4, rune(b&0x07), 0x10000
		default:
			// Bare continuation byte or a 5+ byte lead.
			sb.WriteRune(utf8.RuneError)
			markBad(i)
			i++
			continue
		}

		j := 1
		for ; j < n; j++ {
			if i+j >= len(raw) || raw[i+j]&0xC0 != 0x80 {
				break
			}
			cp = cp<<6 | rune(raw[i+j]&0x3F)
		}
		if j < n {
			sb.WriteRune(utf8.RuneError)
			markBad(i)
			i += j
			continue
		}

		if cp < min || !utf8.ValidRune(cp) {
			markBad(i)
		}
		sb.WriteRune(cp)
		i += n
	}

	return sb.String(), bad
}
