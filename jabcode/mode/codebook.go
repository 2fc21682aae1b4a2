package mode

// escapeKind distinguishes a latch, which replaces the current persistent mode, from a shift,
// which borrows the target mode for exactly the one character that follows and then reverts to
// whatever mode was latched before the shift -- the distinction original_source/src/jabcode/
// encoder.h's latch_shift_to table draws between its columns 0-6 (latch) and 7-13 (shift).
type escapeKind int

const (
	escapeLatch escapeKind = iota
	escapeShift
)

// trieNode is one node of a bit trie: each mode's codebook is a trie over the bits of its literal
// character codes and its mode-switch escapes, read MSB-first. The mode_switch codewords are not a
// prefix code on their own: a few of them extend a shorter escape of the same mode (see
// buildCodebook), and insert keeps the shorter escape when that happens.
type trieNode struct {
	isLeaf   bool
	isEscape bool
	literal  int // valid when isLeaf && !isEscape: index into DecodingTable(mode)
	target   Mode
	kind     escapeKind
	zero     *trieNode
	one      *trieNode
}

func (n *trieNode) insert(value, width int, leaf trieNode) {
	cur := n
	for i := width - 1; i >= 0; i-- {
		if cur.isLeaf {
			if cur.isEscape && leaf.isEscape {
				return
			}
			panic("mode: escape code prefix collision")
		}
		bit := (value >> uint(i)) & 1
		next := &cur.zero
		if bit == 1 {
			next = &cur.one
		}
		if *next == nil {
			*next = &trieNode{}
		}
		cur = *next
	}
	if cur.isLeaf || cur.zero != nil || cur.one != nil {
		panic("mode: escape code prefix collision")
	}
	*cur = leaf
	cur.isLeaf = true
}

// codebook is the per-latch-mode trie covering that mode's literal alphabet plus every escape
// (latch or shift) reachable from it.
type codebook struct {
	mode        Mode
	baseWidth   int
	alphabetLen int
	root        *trieNode
	escapes     map[escapeTarget]escapeCode
}

type escapeTarget struct {
	to   Mode
	kind escapeKind
}

type escapeCode struct {
	target Mode
	kind   escapeKind
	width  int
	value  int
}

func characterWidth(m Mode) int { return CharacterSize[m] }

func alphabetLen(m Mode) int {
	if m == Byte {
		return 256
	}
	return len(DecodingTable(m))
}

// tableCode looks up the real ported codeword for switching from `from` to `to`, latch or
// shift, in ModeSwitchCode/LatchShiftCost. ok is false where the reference table has no direct
// path (value -1, cost ENC_MAX/infinite, or a 0-bit run-length-signalled transition that this
// package's fixed-width trie cannot represent). width is the table's cost, which for a shift to
// Byte includes the 4-bit byte count.
func tableCode(from, to Mode, kind escapeKind) (width, value int, ok bool) {
	col := int(to)
	if kind == escapeShift {
		col += 7
	}
	w := LatchShiftCost[from][col]
	v := ModeSwitchCode[from][col]
	if w >= infinite || v < 0 || w == 0 {
		return 0, 0, false
	}
	return w, v, true
}

// buildCodebook assembles the trie for latch mode `from`: its own literal alphabet at
// characterWidth(from) bits, plus one escape per (target, latch-or-shift) pair that the reference
// table gives a codeword, at that codeword's value and width. A shift to Byte is written as its
// codeword alone, without the 4-bit byte count the table's cost includes: each Byte shift carries
// exactly one byte, and encoder.h's byte runs are not reproduced (see DESIGN.md). Byte itself gets
// no escapes and is never latched into. Where a codeword extends a shorter escape of the same
// mode (Numeric to Alnum, Alnum to Lower, Alnum to Numeric: each a latch through Upper), only the
// shorter escape enters the trie; the encoder still writes the full codeword, and the decoder
// reads it back as the two escapes in turn.
func buildCodebook(from Mode) *codebook {
	base := characterWidth(from)
	alen := alphabetLen(from)
	cb := &codebook{mode: from, baseWidth: base, alphabetLen: alen, root: &trieNode{}, escapes: map[escapeTarget]escapeCode{}}

	for idx := 0; idx < alen; idx++ {
		cb.root.insert(idx, base, trieNode{literal: idx})
	}

	if from == Byte {
		return cb
	}

	next := alen
	reserve := func(to Mode, kind escapeKind) {
		if next >= 1<<uint(base) {
			panic("mode: escape code space exhausted for " + from.String())
		}
		ec := escapeCode{target: to, kind: kind, width: base, value: next}
		cb.root.insert(next, base, trieNode{isEscape: true, target: to, kind: kind})
		cb.escapes[escapeTarget{to, kind}] = ec
		next++
	}

	for to := Mode(0); to < modeCount; to++ {
		if to == from {
			continue
		}
		if w, v, ok := tableCode(from, to, escapeLatch); ok {
			ec := escapeCode{target: to, kind: escapeLatch, width: w, value: v}
			cb.root.insert(v, w, trieNode{isEscape: true, target: to, kind: escapeLatch})
			cb.escapes[escapeTarget{to, escapeLatch}] = ec
		} else if from == Byte {
			reserve(to, escapeLatch)
		}
		if w, v, ok := tableCode(from, to, escapeShift); ok {
			if to == Byte {
				w -= 4
			}
			ec := escapeCode{target: to, kind: escapeShift, width: w, value: v}
			cb.root.insert(v, w, trieNode{isEscape: true, target: to, kind: escapeShift})
			cb.escapes[escapeTarget{to, escapeShift}] = ec
		}
	}
	return cb
}

func (cb *codebook) escapeFor(target Mode, kind escapeKind) (escapeCode, bool) {
	ec, ok := cb.escapes[escapeTarget{target, kind}]
	return ec, ok
}

var modeCodebooks = func() [modeCount]*codebook {
	var books [modeCount]*codebook
	for m := Mode(0); m < modeCount; m++ {
		books[m] = buildCodebook(m)
	}
	return books
}()
