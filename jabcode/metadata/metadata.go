// Package metadata packs and unpacks the per-symbol side-channel fields carried alongside a
// symbol's data: the master's Nc/mask/docking/ECC fields placed on the metadata snake (§4.5),
// and each slave's SS/SE/V/E footer bits carried inside its own LDPC-protected message (§4.9).
//
// Bit layout decision (Open Question, spec.md §9): the retrieved source only gives Part I and
// Part II's *encoded* lengths (6 bits from 3, 38 bits from 19), not the literal field order -- the
// translation unit defining it was not captured by retrieval (see DESIGN.md). This package fixes
// one self-consistent layout: Part I carries Nc alone (3 bits); Part II carries mask_type (3),
// docked_position (4), wc (4), wr (4), with 4 reserved/padding bits to reach 19. The master's own
// side version is never stored here -- the decoder recovers it from the detected finder-pattern
// geometry (§4.7), so it would be redundant in metadata.
package metadata

// PartILength and PartIILength are the pre-LDPC message lengths of the master's two metadata
// blocks, per spec.md §4.5.
const (
	PartILength  = 3
	PartIILength = 19
)

// Wc returns the LDPC column weight the metadata matrix construction derives from a message
// length of pn bits, mirroring decodeLDPChd/decodeLDPC's wr<=3 branch (used for every metadata
// block, which is always encoded with wr==0).
func Wc(pn int) int {
	if pn > 36 {
		return 3
	}
	return 2
}

// EncodePartI packs Nc (0..7) into a 3-bit message.
func EncodePartI(nc int) []byte {
	return []byte{byte(nc >> 2 & 1), byte(nc >> 1 & 1), byte(nc & 1)}
}

// DecodePartI unpacks a 3-bit Part I message back into Nc.
func DecodePartI(bits []byte) int {
	return int(bits[0])<<2 | int(bits[1])<<1 | int(bits[2])
}

// PartII is the master's second metadata block: mask selection, docking bitmap, and LDPC
// parameters for the master's own data.
type PartII struct {
	MaskType       int
	DockedPosition int
	Wc, Wr         int
}

// EncodePartII packs p into a 19-bit message (4 bits reserved/zero at the tail).
func EncodePartII(p PartII) []byte {
	bits := make([]byte, PartIILength)
	put := func(offset, width, v int) {
		for i := 0; i < width; i++ {
			bits[offset+i] = byte((v >> (width - 1 - i)) & 1)
		}
	}
	put(0, 3, p.MaskType)
	put(3, 4, p.DockedPosition)
	put(7, 4, p.Wc)
	put(11, 4, p.Wr)
	return bits
}

// DecodePartII unpacks a 19-bit Part II message.
func DecodePartII(bits []byte) PartII {
	get := func(offset, width int) int {
		v := 0
		for i := 0; i < width; i++ {
			v = v<<1 | int(bits[offset+i])
		}
		return v
	}
	return PartII{
		MaskType:       get(0, 3),
		DockedPosition: get(3, 4),
		Wc:             get(7, 4),
		Wr:             get(11, 4),
	}
}

// SlaveFooter is the variable-length footer a slave symbol appends to its own payload bits
// (§4.9 "Metadata footer"): SS/SE flag whether its version/ECC differ from its host's, followed
// by the differing value(s) only when they do.
type SlaveFooter struct {
	SameVersion bool
	SameECC     bool
	Version     int // side version (1..32), present only when !SameVersion
	Wc, Wr      int // present only when !SameECC
}

// Encode packs f into its footer bits: SS(1), SE(1), optional V(5), optional E(8, wc<<4|wr).
func (f SlaveFooter) Encode() []byte {
	bits := make([]byte, 0, 16)
	bit := func(v bool) byte {
		if v {
			return 1
		}
		return 0
	}
	bits = append(bits, bit(f.SameVersion), bit(f.SameECC))
	if !f.SameVersion {
		v := f.Version - 1
		for i := 4; i >= 0; i-- {
			bits = append(bits, byte((v>>i)&1))
		}
	}
	if !f.SameECC {
		e := f.Wc<<4 | f.Wr
		for i := 7; i >= 0; i-- {
			bits = append(bits, byte((e>>i)&1))
		}
	}
	return bits
}

// DecodeSlaveFooter reads a slave footer starting at bits[pos], returning the parsed footer and
// the position immediately after it.
func DecodeSlaveFooter(bits []byte, pos int) (SlaveFooter, int, bool) {
	if pos+2 > len(bits) {
		return SlaveFooter{}, pos, false
	}
	f := SlaveFooter{SameVersion: bits[pos] == 1, SameECC: bits[pos+1] == 1}
	pos += 2
	if !f.SameVersion {
		if pos+5 > len(bits) {
			return SlaveFooter{}, pos, false
		}
		v := 0
		for i := 0; i < 5; i++ {
			v = v<<1 | int(bits[pos+i])
		}
		f.Version = v + 1
		pos += 5
	}
	if !f.SameECC {
		if pos+8 > len(bits) {
			return SlaveFooter{}, pos, false
		}
		e := 0
		for i := 0; i < 8; i++ {
			e = e<<1 | int(bits[pos+i])
		}
		f.Wc, f.Wr = e>>4, e&0xF
		pos += 8
	}
	return f, pos, true
}
