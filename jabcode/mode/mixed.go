package mode

import (
	"golang.org/x/text/encoding/charmap"
)

// PreprocessText converts s to the Latin-1 byte sequence the adaptive mode encoder operates on
// when every rune is representable in ISO-8859-1 (covering Mixed mode's German-alphabet
// codepoints, e.g. ä/ö/ü/ß). When a rune falls outside Latin-1 (emoji, CJK, the euro sign, ...),
// PreprocessText falls back to encoding the raw UTF-8 bytes of s instead, letting Byte mode carry
// those characters one byte at a time -- mirroring how the reference encoder treats text it has
// no native alphabet for.
func PreprocessText(s string) []byte {
	enc := charmap.ISO8859_1.NewEncoder()
	if latin1, err := enc.String(s); err == nil {
		return []byte(latin1)
	}
	return []byte(s)
}
